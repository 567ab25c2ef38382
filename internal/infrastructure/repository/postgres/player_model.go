package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID                  int64         `db:"id"`
	PublicID            string        `db:"public_id"`
	TeamID              string        `db:"team_public_id"`
	Name                string        `db:"name"`
	JerseyNumber        sql.NullInt32 `db:"jersey_number"`
	Notes               string        `db:"notes"`
	CanPlayGoalkeeper   bool          `db:"can_play_goalkeeper"`
	CanPlayAttack       bool          `db:"can_play_attack"`
	CanPlayDefense      bool          `db:"can_play_defense"`
	SeasonMinutesPlayed int           `db:"season_minutes_played"`
	CreatedAt           time.Time     `db:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
	DeletedAt           *time.Time    `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID            string        `db:"public_id"`
	TeamID              string        `db:"team_public_id"`
	Name                string        `db:"name"`
	JerseyNumber        sql.NullInt32 `db:"jersey_number"`
	Notes               string        `db:"notes"`
	CanPlayGoalkeeper   bool          `db:"can_play_goalkeeper"`
	CanPlayAttack       bool          `db:"can_play_attack"`
	CanPlayDefense      bool          `db:"can_play_defense"`
	SeasonMinutesPlayed int           `db:"season_minutes_played"`
	CreatedAt           time.Time     `db:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at"`
}
