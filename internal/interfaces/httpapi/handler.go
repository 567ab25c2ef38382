package httpapi

import (
	"net/http"

	"github.com/riskibarqy/touchline/internal/domain/team"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"status":       "ok",
		"liveSessions": len(h.liveService.List(ctx)),
	})
}

func (h *Handler) ListAgeGroupPresets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAgeGroupPresets")
	defer span.End()

	items := make([]agePresetDTO, 0, len(team.AllAgeGroups))
	for _, group := range team.AllAgeGroups {
		preset, err := team.PresetFor(group)
		if err != nil {
			h.logger.ErrorContext(ctx, "load age group preset failed", "age_group", group, "error", err)
			writeInternalError(ctx, w)
			return
		}
		items = append(items, agePresetToDTO(group, preset))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
