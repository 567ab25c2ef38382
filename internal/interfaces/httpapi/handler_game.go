package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/touchline/internal/usecase"
)

func (h *Handler) ListGamesByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamesByTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	games, err := h.fixtureService.ListGamesByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	gameID := strings.TrimSpace(r.PathValue("gameID"))

	item, err := h.fixtureService.GetGame(ctx, teamID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "team_id", teamID, "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	h.upsertGame(w, r.WithContext(ctx), "", http.StatusCreated)
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGame")
	defer span.End()

	h.upsertGame(w, r.WithContext(ctx), strings.TrimSpace(r.PathValue("gameID")), http.StatusOK)
}

func (h *Handler) upsertGame(w http.ResponseWriter, r *http.Request, gameID string, status int) {
	ctx := r.Context()
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req upsertGameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	kickoff, err := parseKickoff(req.KickoffAt)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.UpsertGame(ctx, usecase.UpsertGameInput{
		ID:               gameID,
		TeamID:           teamID,
		Opponent:         req.Opponent,
		KickoffAt:        kickoff,
		Location:         req.Location,
		MinutesPerPeriod: req.MinutesPerPeriod,
		Periods:          req.Periods,
		PlayersOnField:   req.PlayersOnField,
		Notes:            req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert game failed", "team_id", teamID, "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, status, gameToDTO(item))
}

func (h *Handler) SetGameAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGameAvailability")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req availabilityRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.SetAvailability(ctx, teamID, gameID, req.Availability)
	if err != nil {
		h.logger.WarnContext(ctx, "set availability failed", "team_id", teamID, "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGame")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	gameID := strings.TrimSpace(r.PathValue("gameID"))

	if err := h.fixtureService.DeleteGame(ctx, teamID, gameID); err != nil {
		h.logger.WarnContext(ctx, "delete game failed", "team_id", teamID, "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
