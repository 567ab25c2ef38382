package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/team"
	teammock "github.com/riskibarqy/touchline/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func TestTeamService_UpsertTeam_CreateFromPreset(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, staticIDGenerator{id: "team-001"})
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	teamRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(v team.Team) bool {
			return v.ID == "team-001" && v.PlayersOnField == 8 && v.MinPlayersToStart == 6
		})).
		Return(nil).
		Once()

	got, err := service.UpsertTeam(ctx, UpsertTeamInput{Name: " Rockets ", AgeGroup: "u10"})
	if err != nil {
		t.Fatalf("upsert team: %v", err)
	}
	if got.Name != "Rockets" || got.AgeGroup != team.AgeGroupU10 {
		t.Fatalf("unexpected team: %+v", got)
	}
	if got.Periods != 2 || got.MinutesPerPeriod != 30 || !got.DedicatedGoalkeeper {
		t.Fatalf("preset not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: created=%s updated=%s", got.CreatedAt, got.UpdatedAt)
	}
}

func TestTeamService_UpsertTeam_OverridesKeepCreatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, staticIDGenerator{id: "unused"})
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	keeper := false

	teamRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "team-7").
		Return(team.Team{ID: "team-7", CreatedAt: created}, true, nil).
		Once()
	teamRepo.
		On("Upsert", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), mock.Anything).
		Return(nil).
		Once()

	got, err := service.UpsertTeam(ctx, UpsertTeamInput{
		ID:                  "team-7",
		Name:                "Cubs",
		AgeGroup:            "U12",
		PlayersOnField:      9,
		MinutesPerPeriod:    30,
		DedicatedGoalkeeper: &keeper,
	})
	if err != nil {
		t.Fatalf("upsert team: %v", err)
	}
	if got.PlayersOnField != 9 || got.MinutesPerPeriod != 30 || got.DedicatedGoalkeeper {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.MinPlayersToStart != 7 {
		t.Fatalf("unexpected min players: %d", got.MinPlayersToStart)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created at changed: %s", got.CreatedAt)
	}
}

func TestTeamService_UpsertTeam_InvalidInput(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, staticIDGenerator{id: "team-001"})

	tests := []UpsertTeamInput{
		{Name: "", AgeGroup: "U8"},
		{Name: "Tigers", AgeGroup: "U21"},
		{Name: "Tigers", AgeGroup: "U8", MinPlayersToStart: 9},
	}
	for _, input := range tests {
		if _, err := service.UpsertTeam(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestTeamService_DeleteTeam_NotFound(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, staticIDGenerator{})

	teamRepo.
		On("GetByID", mock.Anything, "missing").
		Return(team.Team{}, false, nil).
		Once()

	if err := service.DeleteTeam(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_ListTeams_SortedByName(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, staticIDGenerator{})

	teamRepo.
		On("List", mock.Anything).
		Return([]team.Team{{ID: "b", Name: "zebras"}, {ID: "a", Name: "Antelopes"}}, nil).
		Once()

	got, err := service.ListTeams(t.Context())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
