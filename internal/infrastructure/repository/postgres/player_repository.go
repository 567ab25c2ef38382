package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/domain/player"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID, search string) ([]player.Player, error) {
	conditions := []qb.Condition{
		qb.Eq("team_public_id", teamID),
		qb.IsNull("deleted_at"),
	}
	if search = strings.TrimSpace(search); search != "" {
		conditions = append(conditions, qb.Or(
			qb.ILike("name", search),
			qb.ILike("CAST(jersey_number AS TEXT)", search),
		))
	}

	query, args, err := qb.Select("*").From("players").
		Where(conditions...).
		OrderBy("jersey_number NULLS LAST", "LOWER(name)").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	insertModel := playerInsertModel{
		PublicID:            item.ID,
		TeamID:              item.TeamID,
		Name:                item.Name,
		JerseyNumber:        intPtrToNullInt32(item.JerseyNumber),
		Notes:               item.Notes,
		CanPlayGoalkeeper:   item.CanPlayGoalkeeper,
		CanPlayAttack:       item.CanPlayAttack,
		CanPlayDefense:      item.CanPlayDefense,
		SeasonMinutesPlayed: item.SeasonMinutesPlayed,
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("players", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    name = EXCLUDED.name,
    jersey_number = EXCLUDED.jersey_number,
    notes = EXCLUDED.notes,
    can_play_goalkeeper = EXCLUDED.can_play_goalkeeper,
    can_play_attack = EXCLUDED.can_play_attack,
    can_play_defense = EXCLUDED.can_play_defense,
    season_minutes_played = EXCLUDED.season_minutes_played,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player=%s: %w", item.ID, err)
	}

	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.Update("players").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build soft delete player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("soft delete player=%s: %w", playerID, err)
	}

	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:                  row.PublicID,
		TeamID:              row.TeamID,
		Name:                row.Name,
		JerseyNumber:        nullInt32ToIntPtr(row.JerseyNumber),
		Notes:               row.Notes,
		CanPlayGoalkeeper:   row.CanPlayGoalkeeper,
		CanPlayAttack:       row.CanPlayAttack,
		CanPlayDefense:      row.CanPlayDefense,
		SeasonMinutesPlayed: row.SeasonMinutesPlayed,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}
