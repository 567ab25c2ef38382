package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/domain/fixture"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByTeam(ctx context.Context, teamID string) ([]fixture.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by team query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by team: %w", err)
	}

	out := make([]fixture.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}

	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, gameID string) (fixture.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Game{}, false, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Game{}, false, nil
		}
		return fixture.Game{}, false, fmt.Errorf("select game by id: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Game) error {
	insertModel := gameInsertModel{
		PublicID:         item.ID,
		TeamID:           item.TeamID,
		Opponent:         item.Opponent,
		KickoffAt:        item.KickoffAt.UTC(),
		Location:         item.Location,
		MinutesPerPeriod: item.MinutesPerPeriod,
		Periods:          item.Periods,
		PlayersOnField:   item.PlayersOnField,
		Notes:            item.Notes,
		Availability:     availabilityJSON(item.Availability),
		CreatedAt:        item.CreatedAt.UTC(),
		UpdatedAt:        item.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("games", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    opponent = EXCLUDED.opponent,
    kickoff_at = EXCLUDED.kickoff_at,
    location = EXCLUDED.location,
    minutes_per_period = EXCLUDED.minutes_per_period,
    periods = EXCLUDED.periods,
    players_on_field = EXCLUDED.players_on_field,
    notes = EXCLUDED.notes,
    availability = EXCLUDED.availability,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game=%s: %w", item.ID, err)
	}

	return nil
}

func (r *FixtureRepository) UpdateAvailability(ctx context.Context, gameID string, availability map[string]bool) error {
	query, args, err := qb.Update("games").
		Set("availability", availabilityJSON(availability)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game availability query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game availability: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update game availability: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update game availability game=%s: not found", gameID)
	}

	return nil
}

func (r *FixtureRepository) Delete(ctx context.Context, gameID string) error {
	query, args, err := qb.Update("games").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("soft delete game=%s: %w", gameID, err)
	}

	return nil
}

func gameFromRow(row gameTableModel) fixture.Game {
	availability := map[string]bool(row.Availability)
	if availability == nil {
		availability = map[string]bool{}
	}
	return fixture.Game{
		ID:               row.PublicID,
		TeamID:           row.TeamID,
		Opponent:         row.Opponent,
		KickoffAt:        row.KickoffAt,
		Location:         row.Location,
		MinutesPerPeriod: row.MinutesPerPeriod,
		Periods:          row.Periods,
		PlayersOnField:   row.PlayersOnField,
		Notes:            row.Notes,
		Availability:     availability,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
