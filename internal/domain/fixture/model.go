package fixture

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
)

// Game is a scheduled match of a team. Zero format fields fall back to the
// team settings.
type Game struct {
	ID               string
	TeamID           string
	Opponent         string
	KickoffAt        time.Time
	Location         string
	MinutesPerPeriod int
	Periods          int
	PlayersOnField   int
	Notes            string
	Availability     map[string]bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.TeamID == "" {
		return fmt.Errorf("game team id is required")
	}
	if strings.TrimSpace(g.Opponent) == "" {
		return fmt.Errorf("game opponent is required")
	}
	if g.KickoffAt.IsZero() {
		return fmt.Errorf("game kickoff time is required")
	}
	if g.MinutesPerPeriod < 0 || g.Periods < 0 || g.PlayersOnField < 0 {
		return fmt.Errorf("game format values cannot be negative")
	}

	return nil
}

// ApplyFormat overrides the team config with the values this game sets.
func (g Game) ApplyFormat(cfg lineup.GameConfig) lineup.GameConfig {
	if g.MinutesPerPeriod > 0 {
		cfg.MinutesPerPeriod = g.MinutesPerPeriod
	}
	if g.Periods > 0 {
		cfg.Periods = g.Periods
	}
	if g.PlayersOnField > 0 {
		cfg.PlayersOnField = g.PlayersOnField
		cfg.MinPlayersToStart = min(cfg.MinPlayersToStart, g.PlayersOnField)
	}
	return cfg
}

// AvailableIDs lists the players marked available, in no particular order.
func (g Game) AvailableIDs() []string {
	out := make([]string, 0, len(g.Availability))
	for id, ok := range g.Availability {
		if ok {
			out = append(out, id)
		}
	}
	return out
}

func (g Game) Clone() Game {
	out := g
	if g.Availability != nil {
		out.Availability = make(map[string]bool, len(g.Availability))
		for k, v := range g.Availability {
			out.Availability[k] = v
		}
	}
	return out
}
