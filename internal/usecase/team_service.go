package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/team"
	idgen "github.com/riskibarqy/touchline/internal/platform/id"
)

// UpsertTeamInput creates a team when ID is empty. Zero format values fall
// back to the age group preset.
type UpsertTeamInput struct {
	ID                  string
	Name                string
	AgeGroup            string
	PlayersOnField      int
	Periods             int
	MinutesPerPeriod    int
	MinPlayersToStart   int
	DedicatedGoalkeeper *bool
}

type TeamService struct {
	teamRepo team.Repository
	idGen    idgen.Generator
	now      func() time.Time
}

func NewTeamService(teamRepo team.Repository, idGen idgen.Generator) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	return loadTeam(ctx, s.teamRepo, teamID)
}

func (s *TeamService) UpsertTeam(ctx context.Context, input UpsertTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpsertTeam")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	group, err := team.ParseAgeGroup(input.AgeGroup)
	if err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	createdAt := now
	if input.ID == "" {
		id, err := s.idGen.NewID()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate team id: %w", err)
		}
		input.ID = id
	} else {
		existing, err := loadTeam(ctx, s.teamRepo, input.ID)
		if err != nil {
			return team.Team{}, err
		}
		createdAt = existing.CreatedAt
	}

	item, err := team.Defaults(input.ID, input.Name, group)
	if err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.PlayersOnField > 0 {
		item.PlayersOnField = input.PlayersOnField
		item.MinPlayersToStart = min(item.MinPlayersToStart, input.PlayersOnField)
	}
	if input.Periods > 0 {
		item.Periods = input.Periods
	}
	if input.MinutesPerPeriod > 0 {
		item.MinutesPerPeriod = input.MinutesPerPeriod
	}
	if input.MinPlayersToStart > 0 {
		item.MinPlayersToStart = input.MinPlayersToStart
	}
	if input.DedicatedGoalkeeper != nil {
		item.DedicatedGoalkeeper = *input.DedicatedGoalkeeper
	}
	item.CreatedAt = createdAt
	item.UpdatedAt = now

	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Upsert(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("upsert team: %w", err)
	}

	return item, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer span.End()

	item, err := loadTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func loadTeam(ctx context.Context, repo team.Repository, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}
