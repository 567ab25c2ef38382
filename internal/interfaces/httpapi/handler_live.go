package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/touchline/internal/usecase"
)

func (h *Handler) StartLiveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartLiveSession")
	defer span.End()

	var req startLiveSessionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	update, err := h.liveService.Start(ctx, usecase.StartLiveGameInput{
		TeamID:             req.TeamID,
		GameID:             req.GameID,
		Intensity:          req.Intensity,
		AvailablePlayerIDs: req.AvailablePlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start live session failed", "team_id", req.TeamID, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, update)
}

func (h *Handler) ListLiveSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveSessions")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.liveService.List(ctx))
}

func (h *Handler) GetLiveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveSession")
	defer span.End()

	h.writeLiveAction(w, r.WithContext(ctx), "get live session", h.liveService.Get)
}

func (h *Handler) BlowLiveWhistle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BlowLiveWhistle")
	defer span.End()

	h.writeLiveAction(w, r.WithContext(ctx), "start whistle", h.liveService.Whistle)
}

func (h *Handler) ToggleLivePause(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleLivePause")
	defer span.End()

	h.writeLiveAction(w, r.WithContext(ctx), "toggle pause", h.liveService.TogglePause)
}

func (h *Handler) ConfirmLiveSubstitution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmLiveSubstitution")
	defer span.End()

	h.writeLiveAction(w, r.WithContext(ctx), "confirm substitution", h.liveService.Confirm)
}

func (h *Handler) SetLiveSpeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetLiveSpeed")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))

	var req setSpeedRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	update, err := h.liveService.SetSpeed(ctx, sessionID, req.Speed)
	if err != nil {
		h.logger.WarnContext(ctx, "set speed failed", "session_id", sessionID, "speed", req.Speed, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, update)
}

func (h *Handler) MarkLivePlayerInjured(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkLivePlayerInjured")
	defer span.End()

	h.writeLivePlayerAction(w, r.WithContext(ctx), "mark injured", h.liveService.Injure)
}

func (h *Handler) MarkLivePlayerRecovered(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkLivePlayerRecovered")
	defer span.End()

	h.writeLivePlayerAction(w, r.WithContext(ctx), "mark recovered", h.liveService.Recover)
}

func (h *Handler) FinishLiveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishLiveSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	result, err := h.liveService.Finish(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "finish live session failed", "session_id", sessionID, "error", err)
		if len(result.Uncredited) > 0 {
			writeErrorWithData(ctx, w, err, result)
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) CreditSeasonMinutes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreditSeasonMinutes")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req creditSeasonMinutesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.liveService.CreditSeasonMinutes(ctx, usecase.CreditSeasonMinutesInput{
		TeamID:  teamID,
		Minutes: req.Minutes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "credit season minutes failed", "team_id", teamID, "error", err)
		if len(result.Uncredited) > 0 {
			writeErrorWithData(ctx, w, err, result)
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type liveAction func(ctx context.Context, sessionID string) (usecase.Update, error)

type livePlayerAction func(ctx context.Context, sessionID, playerID string) (usecase.Update, error)

func (h *Handler) writeLiveAction(w http.ResponseWriter, r *http.Request, name string, action liveAction) {
	ctx := r.Context()
	sessionID := strings.TrimSpace(r.PathValue("sessionID"))

	update, err := action(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, name+" failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, update)
}

func (h *Handler) writeLivePlayerAction(w http.ResponseWriter, r *http.Request, name string, action livePlayerAction) {
	ctx := r.Context()
	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	update, err := action(ctx, sessionID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, name+" failed", "session_id", sessionID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, update)
}
