package fixture

import (
	"testing"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
)

func TestApplyFormat(t *testing.T) {
	base := lineup.GameConfig{MinutesPerPeriod: 25, Periods: 2, PlayersOnField: 6, MinPlayersToStart: 4}

	got := Game{MinutesPerPeriod: 20}.ApplyFormat(base)
	if got.MinutesPerPeriod != 20 || got.Periods != 2 || got.PlayersOnField != 6 {
		t.Fatalf("unexpected config: %+v", got)
	}

	got = Game{PlayersOnField: 3}.ApplyFormat(base)
	if got.PlayersOnField != 3 || got.MinPlayersToStart != 3 {
		t.Fatalf("min players should clamp to players on field: %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("clamped config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	g := Game{ID: "g1", TeamID: "t1", Opponent: "Rovers", KickoffAt: time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g.KickoffAt = time.Time{}
	if err := g.Validate(); err == nil {
		t.Fatalf("expected kickoff error")
	}
}

func TestCloneCopiesAvailability(t *testing.T) {
	g := Game{Availability: map[string]bool{"a": true}}
	clone := g.Clone()
	clone.Availability["a"] = false

	if !g.Availability["a"] {
		t.Fatalf("clone should not share availability map")
	}
}
