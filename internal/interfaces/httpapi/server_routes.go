package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/age-groups", handler.ListAgeGroupPresets)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.DeleteTeam)

	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
	mux.HandleFunc("POST /v1/teams/{teamID}/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/teams/{teamID}/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/teams/{teamID}/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/teams/{teamID}/players/{playerID}", handler.DeletePlayer)
	mux.HandleFunc("POST /v1/teams/{teamID}/season-minutes", handler.CreditSeasonMinutes)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}/games", handler.ListGamesByTeam)
	mux.HandleFunc("POST /v1/teams/{teamID}/games", handler.CreateGame)
	mux.HandleFunc("GET /v1/teams/{teamID}/games/{gameID}", handler.GetGame)
	mux.HandleFunc("PUT /v1/teams/{teamID}/games/{gameID}", handler.UpdateGame)
	mux.HandleFunc("DELETE /v1/teams/{teamID}/games/{gameID}", handler.DeleteGame)
	mux.HandleFunc("PUT /v1/teams/{teamID}/games/{gameID}/availability", handler.SetGameAvailability)
}

func registerLiveSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/live-sessions", handler.StartLiveSession)
	mux.HandleFunc("GET /v1/live-sessions", handler.ListLiveSessions)
	mux.HandleFunc("GET /v1/live-sessions/{sessionID}", handler.GetLiveSession)
	mux.HandleFunc("GET /v1/live-sessions/{sessionID}/stream", handler.StreamLiveSession)
	mux.HandleFunc("POST /v1/live-sessions/{sessionID}/whistle", handler.BlowLiveWhistle)
	mux.HandleFunc("POST /v1/live-sessions/{sessionID}/pause", handler.ToggleLivePause)
	mux.HandleFunc("PUT /v1/live-sessions/{sessionID}/speed", handler.SetLiveSpeed)
	mux.HandleFunc("POST /v1/live-sessions/{sessionID}/substitution/confirm", handler.ConfirmLiveSubstitution)
	mux.HandleFunc("POST /v1/live-sessions/{sessionID}/players/{playerID}/injury", handler.MarkLivePlayerInjured)
	mux.HandleFunc("POST /v1/live-sessions/{sessionID}/players/{playerID}/recovery", handler.MarkLivePlayerRecovered)
	mux.HandleFunc("POST /v1/live-sessions/{sessionID}/finish", handler.FinishLiveSession)
}
