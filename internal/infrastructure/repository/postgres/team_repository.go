package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/domain/team"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		PublicID:            item.ID,
		Name:                item.Name,
		AgeGroup:            string(item.AgeGroup),
		PlayersOnField:      item.PlayersOnField,
		Periods:             item.Periods,
		MinutesPerPeriod:    item.MinutesPerPeriod,
		DedicatedGoalkeeper: item.DedicatedGoalkeeper,
		MinPlayersToStart:   item.MinPlayersToStart,
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    age_group = EXCLUDED.age_group,
    players_on_field = EXCLUDED.players_on_field,
    periods = EXCLUDED.periods,
    minutes_per_period = EXCLUDED.minutes_per_period,
    dedicated_goalkeeper = EXCLUDED.dedicated_goalkeeper,
    min_players_to_start = EXCLUDED.min_players_to_start,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team=%s: %w", item.ID, err)
	}

	return nil
}

// Delete soft-deletes the team together with its roster and schedule.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	steps := []struct {
		table  string
		column string
	}{
		{table: "games", column: "team_public_id"},
		{table: "players", column: "team_public_id"},
		{table: "teams", column: "public_id"},
	}
	for _, step := range steps {
		query, args, err := qb.Update(step.table).
			SetExpr("deleted_at", "NOW()").
			Where(
				qb.Eq(step.column, teamID),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build soft delete %s query: %w", step.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("soft delete %s team=%s: %w", step.table, teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete team tx: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:                  row.PublicID,
		Name:                row.Name,
		AgeGroup:            team.AgeGroup(row.AgeGroup),
		PlayersOnField:      row.PlayersOnField,
		Periods:             row.Periods,
		MinutesPerPeriod:    row.MinutesPerPeriod,
		DedicatedGoalkeeper: row.DedicatedGoalkeeper,
		MinPlayersToStart:   row.MinPlayersToStart,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}
