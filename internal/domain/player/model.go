package player

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
)

// Player is a roster entry of a youth team.
type Player struct {
	ID                  string
	TeamID              string
	Name                string
	JerseyNumber        *int
	Notes               string
	CanPlayGoalkeeper   bool
	CanPlayAttack       bool
	CanPlayDefense      bool
	SeasonMinutesPlayed int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.JerseyNumber != nil && (*p.JerseyNumber < 0 || *p.JerseyNumber > 99) {
		return fmt.Errorf("jersey number must be between 0 and 99")
	}
	if p.SeasonMinutesPlayed < 0 {
		return fmt.Errorf("season minutes played cannot be negative")
	}

	return nil
}

// Matches reports whether the player fits a roster search. The query matches
// the name case-insensitively or any part of the jersey number.
func (p Player) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	return p.JerseyNumber != nil && strings.Contains(strconv.Itoa(*p.JerseyNumber), q)
}

// Filter keeps the players matching query, preserving order.
func Filter(players []Player, query string) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out
}

// SortRoster orders by jersey number with unnumbered players last, then by name.
func SortRoster(players []Player) {
	sort.SliceStable(players, func(i, j int) bool {
		ji, jj := jerseyKey(players[i]), jerseyKey(players[j])
		if ji != jj {
			return ji < jj
		}
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})
}

func jerseyKey(p Player) int {
	if p.JerseyNumber == nil {
		return int(^uint(0) >> 1)
	}
	return *p.JerseyNumber
}

// Snapshots converts a roster into the engine's season view.
func Snapshots(players []Player) []lineup.PlayerSeasonSnapshot {
	out := make([]lineup.PlayerSeasonSnapshot, 0, len(players))
	for _, p := range players {
		out = append(out, lineup.PlayerSeasonSnapshot{
			ID:                  p.ID,
			Name:                p.Name,
			SeasonMinutesPlayed: p.SeasonMinutesPlayed,
		})
	}
	return out
}

// Availability lists every roster player, marking those in available.
func Availability(players []Player, available map[string]bool) []lineup.PlayerAvailability {
	out := make([]lineup.PlayerAvailability, 0, len(players))
	for _, p := range players {
		out = append(out, lineup.PlayerAvailability{ID: p.ID, IsAvailable: available[p.ID]})
	}
	return out
}
