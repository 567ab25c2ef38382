package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
	idgen "github.com/riskibarqy/touchline/internal/platform/id"
)

// UpsertPlayerInput creates a player when ID is empty. Season minutes are
// owned by game crediting and cannot be set here.
type UpsertPlayerInput struct {
	ID                string
	TeamID            string
	Name              string
	JerseyNumber      *int
	Notes             string
	CanPlayGoalkeeper bool
	CanPlayAttack     bool
	CanPlayDefense    bool
}

type PlayerService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewPlayerService(teamRepo team.Repository, playerRepo player.Repository, idGen idgen.Generator) *PlayerService {
	return &PlayerService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *PlayerService) ListPlayersByTeam(ctx context.Context, teamID, search string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayersByTeam")
	defer span.End()

	item, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, item.ID, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	player.SortRoster(players)
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, teamID, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	return s.getTeamPlayer(ctx, teamID, playerID)
}

func (s *PlayerService) UpsertPlayer(ctx context.Context, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpsertPlayer")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	item, err := loadTeam(ctx, s.teamRepo, input.TeamID)
	if err != nil {
		return player.Player{}, err
	}

	now := s.now().UTC()
	out := player.Player{CreatedAt: now}
	if input.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		out.ID = id
	} else {
		existing, err := s.getTeamPlayer(ctx, item.ID, input.ID)
		if err != nil {
			return player.Player{}, err
		}
		out = existing
	}

	out.TeamID = item.ID
	out.Name = input.Name
	out.JerseyNumber = input.JerseyNumber
	out.Notes = strings.TrimSpace(input.Notes)
	out.CanPlayGoalkeeper = input.CanPlayGoalkeeper
	out.CanPlayAttack = input.CanPlayAttack
	out.CanPlayDefense = input.CanPlayDefense
	out.UpdatedAt = now

	if err := out.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Upsert(ctx, out); err != nil {
		return player.Player{}, fmt.Errorf("upsert player: %w", err)
	}

	return out, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	item, err := s.getTeamPlayer(ctx, teamID, playerID)
	if err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (s *PlayerService) getTeamPlayer(ctx context.Context, teamID, playerID string) (player.Player, error) {
	teamID = strings.TrimSpace(teamID)
	playerID = strings.TrimSpace(playerID)
	if teamID == "" {
		return player.Player{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists || item.TeamID != teamID {
		return player.Player{}, fmt.Errorf("%w: player=%s team=%s", ErrNotFound, playerID, teamID)
	}

	return item, nil
}
