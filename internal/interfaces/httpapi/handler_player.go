package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/touchline/internal/usecase"
)

func (h *Handler) ListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	search := r.URL.Query().Get("search")

	players, err := h.playerService.ListPlayersByTeam(ctx, teamID, search)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	item, err := h.playerService.GetPlayer(ctx, teamID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	h.upsertPlayer(w, r.WithContext(ctx), "", http.StatusCreated)
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	h.upsertPlayer(w, r.WithContext(ctx), strings.TrimSpace(r.PathValue("playerID")), http.StatusOK)
}

func (h *Handler) upsertPlayer(w http.ResponseWriter, r *http.Request, playerID string, status int) {
	ctx := r.Context()
	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req upsertPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.UpsertPlayer(ctx, usecase.UpsertPlayerInput{
		ID:                playerID,
		TeamID:            teamID,
		Name:              req.Name,
		JerseyNumber:      req.JerseyNumber,
		Notes:             req.Notes,
		CanPlayGoalkeeper: req.CanPlayGoalkeeper,
		CanPlayAttack:     req.CanPlayAttack,
		CanPlayDefense:    req.CanPlayDefense,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert player failed", "team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, status, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	if err := h.playerService.DeletePlayer(ctx, teamID, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "team_id", teamID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
