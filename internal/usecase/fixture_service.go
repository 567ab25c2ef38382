package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
	idgen "github.com/riskibarqy/touchline/internal/platform/id"
)

type UpsertGameInput struct {
	ID               string
	TeamID           string
	Opponent         string
	KickoffAt        time.Time
	Location         string
	MinutesPerPeriod int
	Periods          int
	PlayersOnField   int
	Notes            string
}

// FixtureService manages the scheduled games of a team and who can attend.
type FixtureService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	gameRepo   fixture.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewFixtureService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo fixture.Repository,
	idGen idgen.Generator,
) *FixtureService {
	return &FixtureService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *FixtureService) ListGamesByTeam(ctx context.Context, teamID string) ([]fixture.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListGamesByTeam")
	defer span.End()

	item, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list games by team: %w", err)
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].KickoffAt.Before(games[j].KickoffAt)
	})
	return games, nil
}

func (s *FixtureService) GetGame(ctx context.Context, teamID, gameID string) (fixture.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetGame")
	defer span.End()

	return loadGame(ctx, s.gameRepo, teamID, gameID)
}

func (s *FixtureService) UpsertGame(ctx context.Context, input UpsertGameInput) (fixture.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpsertGame")
	defer span.End()

	item, err := loadTeam(ctx, s.teamRepo, input.TeamID)
	if err != nil {
		return fixture.Game{}, err
	}

	now := s.now().UTC()
	game := fixture.Game{CreatedAt: now, Availability: map[string]bool{}}
	input.ID = strings.TrimSpace(input.ID)
	if input.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return fixture.Game{}, fmt.Errorf("generate game id: %w", err)
		}
		game.ID = id
	} else {
		existing, err := loadGame(ctx, s.gameRepo, item.ID, input.ID)
		if err != nil {
			return fixture.Game{}, err
		}
		game = existing
	}

	game.TeamID = item.ID
	game.Opponent = strings.TrimSpace(input.Opponent)
	game.KickoffAt = input.KickoffAt.UTC()
	game.Location = strings.TrimSpace(input.Location)
	game.MinutesPerPeriod = input.MinutesPerPeriod
	game.Periods = input.Periods
	game.PlayersOnField = input.PlayersOnField
	game.Notes = strings.TrimSpace(input.Notes)
	game.UpdatedAt = now

	if err := game.Validate(); err != nil {
		return fixture.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := game.ApplyFormat(item.GameConfig()).Validate(); err != nil {
		return fixture.Game{}, fmt.Errorf("%w: game format: %v", ErrInvalidInput, err)
	}
	if err := s.gameRepo.Upsert(ctx, game); err != nil {
		return fixture.Game{}, fmt.Errorf("upsert game: %w", err)
	}

	return game, nil
}

// SetAvailability replaces the attendance map of a game. Every id must be a
// player of the team.
func (s *FixtureService) SetAvailability(ctx context.Context, teamID, gameID string, availability map[string]bool) (fixture.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SetAvailability")
	defer span.End()

	game, err := loadGame(ctx, s.gameRepo, teamID, gameID)
	if err != nil {
		return fixture.Game{}, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, game.TeamID, "")
	if err != nil {
		return fixture.Game{}, fmt.Errorf("list players by team: %w", err)
	}
	known := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		known[p.ID] = struct{}{}
	}

	cleaned := make(map[string]bool, len(availability))
	for id, available := range availability {
		id = strings.TrimSpace(id)
		if _, ok := known[id]; !ok {
			return fixture.Game{}, fmt.Errorf("%w: player %s is not on team %s", ErrInvalidInput, id, game.TeamID)
		}
		cleaned[id] = available
	}

	if err := s.gameRepo.UpdateAvailability(ctx, game.ID, cleaned); err != nil {
		return fixture.Game{}, fmt.Errorf("update game availability: %w", err)
	}

	game.Availability = cleaned
	return game, nil
}

func (s *FixtureService) DeleteGame(ctx context.Context, teamID, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.DeleteGame")
	defer span.End()

	game, err := loadGame(ctx, s.gameRepo, teamID, gameID)
	if err != nil {
		return err
	}
	if err := s.gameRepo.Delete(ctx, game.ID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

func loadGame(ctx context.Context, repo fixture.Repository, teamID, gameID string) (fixture.Game, error) {
	teamID = strings.TrimSpace(teamID)
	gameID = strings.TrimSpace(gameID)
	if teamID == "" {
		return fixture.Game{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if gameID == "" {
		return fixture.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	game, exists, err := repo.GetByID(ctx, gameID)
	if err != nil {
		return fixture.Game{}, fmt.Errorf("get game by id: %w", err)
	}
	if !exists || game.TeamID != teamID {
		return fixture.Game{}, fmt.Errorf("%w: game=%s team=%s", ErrNotFound, gameID, teamID)
	}

	return game, nil
}
