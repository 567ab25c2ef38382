package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/usecase"
)

type Handler struct {
	teamService    *usecase.TeamService
	playerService  *usecase.PlayerService
	fixtureService *usecase.FixtureService
	liveService    *usecase.LiveGameService
	allowedOrigins []string
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	fixtureService *usecase.FixtureService,
	liveService *usecase.LiveGameService,
	allowedOrigins []string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:    teamService,
		playerService:  playerService,
		fixtureService: fixtureService,
		liveService:    liveService,
		allowedOrigins: allowedOrigins,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

type upsertTeamRequest struct {
	Name                string `json:"name" validate:"required,max=100"`
	AgeGroup            string `json:"age_group" validate:"required"`
	PlayersOnField      int    `json:"players_on_field" validate:"omitempty,min=1,max=11"`
	Periods             int    `json:"periods" validate:"omitempty,min=1,max=4"`
	MinutesPerPeriod    int    `json:"minutes_per_period" validate:"omitempty,min=1,max=60"`
	MinPlayersToStart   int    `json:"min_players_to_start" validate:"omitempty,min=1,max=11"`
	DedicatedGoalkeeper *bool  `json:"dedicated_goalkeeper,omitempty"`
}

type upsertPlayerRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	JerseyNumber      *int   `json:"jersey_number,omitempty" validate:"omitempty,min=0,max=99"`
	Notes             string `json:"notes" validate:"max=500"`
	CanPlayGoalkeeper bool   `json:"can_play_goalkeeper"`
	CanPlayAttack     bool   `json:"can_play_attack"`
	CanPlayDefense    bool   `json:"can_play_defense"`
}

type upsertGameRequest struct {
	Opponent         string `json:"opponent" validate:"required,max=100"`
	KickoffAt        string `json:"kickoff_at" validate:"required"`
	Location         string `json:"location" validate:"max=200"`
	MinutesPerPeriod int    `json:"minutes_per_period" validate:"omitempty,min=1,max=60"`
	Periods          int    `json:"periods" validate:"omitempty,min=1,max=4"`
	PlayersOnField   int    `json:"players_on_field" validate:"omitempty,min=1,max=11"`
	Notes            string `json:"notes" validate:"max=500"`
}

type availabilityRequest struct {
	Availability map[string]bool `json:"availability" validate:"required"`
}

type startLiveSessionRequest struct {
	TeamID             string   `json:"team_id" validate:"required"`
	GameID             string   `json:"game_id"`
	Intensity          string   `json:"intensity" validate:"omitempty,oneof=frequent balanced infrequent"`
	AvailablePlayerIDs []string `json:"available_player_ids" validate:"omitempty,dive,required"`
}

type creditSeasonMinutesRequest struct {
	Minutes map[string]int `json:"minutes" validate:"required,min=1,dive,keys,required,endkeys,gte=0"`
}

type setSpeedRequest struct {
	Speed int `json:"speed" validate:"required,oneof=1 5 10"`
}

type agePresetDTO struct {
	AgeGroup            string `json:"ageGroup"`
	PlayersOnField      int    `json:"playersOnField"`
	Periods             int    `json:"periods"`
	MinutesPerPeriod    int    `json:"minutesPerPeriod"`
	DedicatedGoalkeeper bool   `json:"dedicatedGoalkeeper"`
	MinPlayersToStart   int    `json:"minPlayersToStart"`
}

type teamDTO struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	AgeGroup            string `json:"ageGroup"`
	PlayersOnField      int    `json:"playersOnField"`
	Periods             int    `json:"periods"`
	MinutesPerPeriod    int    `json:"minutesPerPeriod"`
	DedicatedGoalkeeper bool   `json:"dedicatedGoalkeeper"`
	MinPlayersToStart   int    `json:"minPlayersToStart"`
	CreatedAtUTC        string `json:"createdAtUtc"`
	UpdatedAtUTC        string `json:"updatedAtUtc"`
}

type playerDTO struct {
	ID                  string `json:"id"`
	TeamID              string `json:"teamId"`
	Name                string `json:"name"`
	JerseyNumber        *int   `json:"jerseyNumber,omitempty"`
	Notes               string `json:"notes,omitempty"`
	CanPlayGoalkeeper   bool   `json:"canPlayGoalkeeper"`
	CanPlayAttack       bool   `json:"canPlayAttack"`
	CanPlayDefense      bool   `json:"canPlayDefense"`
	SeasonMinutesPlayed int    `json:"seasonMinutesPlayed"`
	UpdatedAtUTC        string `json:"updatedAtUtc"`
}

type gameDTO struct {
	ID               string          `json:"id"`
	TeamID           string          `json:"teamId"`
	Opponent         string          `json:"opponent"`
	KickoffAt        string          `json:"kickoffAt"`
	Location         string          `json:"location,omitempty"`
	MinutesPerPeriod int             `json:"minutesPerPeriod,omitempty"`
	Periods          int             `json:"periods,omitempty"`
	PlayersOnField   int             `json:"playersOnField,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Availability     map[string]bool `json:"availability"`
	UpdatedAtUTC     string          `json:"updatedAtUtc"`
}

func agePresetToDTO(group team.AgeGroup, preset team.Preset) agePresetDTO {
	return agePresetDTO{
		AgeGroup:            string(group),
		PlayersOnField:      preset.PlayersOnField,
		Periods:             preset.Periods,
		MinutesPerPeriod:    preset.MinutesPerPeriod,
		DedicatedGoalkeeper: preset.DedicatedGoalkeeper,
		MinPlayersToStart:   preset.MinPlayersToStart,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:                  v.ID,
		Name:                v.Name,
		AgeGroup:            string(v.AgeGroup),
		PlayersOnField:      v.PlayersOnField,
		Periods:             v.Periods,
		MinutesPerPeriod:    v.MinutesPerPeriod,
		DedicatedGoalkeeper: v.DedicatedGoalkeeper,
		MinPlayersToStart:   v.MinPlayersToStart,
		CreatedAtUTC:        formatTime(v.CreatedAt),
		UpdatedAtUTC:        formatTime(v.UpdatedAt),
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:                  v.ID,
		TeamID:              v.TeamID,
		Name:                v.Name,
		JerseyNumber:        v.JerseyNumber,
		Notes:               v.Notes,
		CanPlayGoalkeeper:   v.CanPlayGoalkeeper,
		CanPlayAttack:       v.CanPlayAttack,
		CanPlayDefense:      v.CanPlayDefense,
		SeasonMinutesPlayed: v.SeasonMinutesPlayed,
		UpdatedAtUTC:        formatTime(v.UpdatedAt),
	}
}

func gameToDTO(v fixture.Game) gameDTO {
	availability := v.Availability
	if availability == nil {
		availability = map[string]bool{}
	}
	return gameDTO{
		ID:               v.ID,
		TeamID:           v.TeamID,
		Opponent:         v.Opponent,
		KickoffAt:        formatTime(v.KickoffAt),
		Location:         v.Location,
		MinutesPerPeriod: v.MinutesPerPeriod,
		Periods:          v.Periods,
		PlayersOnField:   v.PlayersOnField,
		Notes:            v.Notes,
		Availability:     availability,
		UpdatedAtUTC:     formatTime(v.UpdatedAt),
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func parseKickoff(v string) (time.Time, error) {
	kickoff, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: kickoff_at must be RFC3339: %v", usecase.ErrInvalidInput, err)
	}
	return kickoff.UTC(), nil
}
