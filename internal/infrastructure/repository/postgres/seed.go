package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo teams into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, name, age_group, players_on_field, periods, minutes_per_period, dedicated_goalkeeper, min_players_to_start)
VALUES (:public_id, :name, :age_group, :players_on_field, :periods, :minutes_per_period, :dedicated_goalkeeper, :min_players_to_start)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":            t.ID,
			"name":                 t.Name,
			"age_group":            string(t.AgeGroup),
			"players_on_field":     t.PlayersOnField,
			"periods":              t.Periods,
			"minutes_per_period":   t.MinutesPerPeriod,
			"dedicated_goalkeeper": t.DedicatedGoalkeeper,
			"min_players_to_start": t.MinPlayersToStart,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, team_public_id, name, jersey_number, notes, can_play_goalkeeper, can_play_attack, can_play_defense, season_minutes_played)
VALUES (:public_id, :team_public_id, :name, :jersey_number, :notes, :can_play_goalkeeper, :can_play_attack, :can_play_defense, :season_minutes_played)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":             p.ID,
			"team_public_id":        p.TeamID,
			"name":                  p.Name,
			"jersey_number":         intPtrToNullInt32(p.JerseyNumber),
			"notes":                 p.Notes,
			"can_play_goalkeeper":   p.CanPlayGoalkeeper,
			"can_play_attack":       p.CanPlayAttack,
			"can_play_defense":      p.CanPlayDefense,
			"season_minutes_played": p.SeasonMinutesPlayed,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, g := range memory.SeedGames() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO games (public_id, team_public_id, opponent, kickoff_at, location, availability)
VALUES (:public_id, :team_public_id, :opponent, :kickoff_at, :location, :availability)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":      g.ID,
			"team_public_id": g.TeamID,
			"opponent":       g.Opponent,
			"kickoff_at":     g.KickoffAt.UTC(),
			"location":       g.Location,
			"availability":   availabilityJSON(g.Availability),
		})
		if err != nil {
			return fmt.Errorf("bind seed game %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
