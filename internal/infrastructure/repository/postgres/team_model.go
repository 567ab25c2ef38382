package postgres

import "time"

type teamTableModel struct {
	ID                  int64      `db:"id"`
	PublicID            string     `db:"public_id"`
	Name                string     `db:"name"`
	AgeGroup            string     `db:"age_group"`
	PlayersOnField      int        `db:"players_on_field"`
	Periods             int        `db:"periods"`
	MinutesPerPeriod    int        `db:"minutes_per_period"`
	DedicatedGoalkeeper bool       `db:"dedicated_goalkeeper"`
	MinPlayersToStart   int        `db:"min_players_to_start"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID            string    `db:"public_id"`
	Name                string    `db:"name"`
	AgeGroup            string    `db:"age_group"`
	PlayersOnField      int       `db:"players_on_field"`
	Periods             int       `db:"periods"`
	MinutesPerPeriod    int       `db:"minutes_per_period"`
	DedicatedGoalkeeper bool      `db:"dedicated_goalkeeper"`
	MinPlayersToStart   int       `db:"min_players_to_start"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}
