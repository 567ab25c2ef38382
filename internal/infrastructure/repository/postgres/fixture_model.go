package postgres

import (
	"time"
)

type gameTableModel struct {
	ID               int64            `db:"id"`
	PublicID         string           `db:"public_id"`
	TeamID           string           `db:"team_public_id"`
	Opponent         string           `db:"opponent"`
	KickoffAt        time.Time        `db:"kickoff_at"`
	Location         string           `db:"location"`
	MinutesPerPeriod int              `db:"minutes_per_period"`
	Periods          int              `db:"periods"`
	PlayersOnField   int              `db:"players_on_field"`
	Notes            string           `db:"notes"`
	Availability     availabilityJSON `db:"availability"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
	DeletedAt        *time.Time       `db:"deleted_at"`
}

type gameInsertModel struct {
	PublicID         string           `db:"public_id"`
	TeamID           string           `db:"team_public_id"`
	Opponent         string           `db:"opponent"`
	KickoffAt        time.Time        `db:"kickoff_at"`
	Location         string           `db:"location"`
	MinutesPerPeriod int              `db:"minutes_per_period"`
	Periods          int              `db:"periods"`
	PlayersOnField   int              `db:"players_on_field"`
	Notes            string           `db:"notes"`
	Availability     availabilityJSON `db:"availability"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}
