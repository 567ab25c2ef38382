package memory

import (
	"time"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
)

const (
	TeamIDLittleLions      = "team-u7-little-lions"
	TeamIDRiversideRockets = "team-u10-riverside-rockets"
	GameIDLionsOpener      = "game-u7-opener"
)

var seedTime = time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID:                TeamIDLittleLions,
			Name:              "Little Lions",
			AgeGroup:          team.AgeGroupU7,
			PlayersOnField:    4,
			Periods:           4,
			MinutesPerPeriod:  10,
			MinPlayersToStart: 3,
			CreatedAt:         seedTime,
			UpdatedAt:         seedTime,
		},
		{
			ID:                  TeamIDRiversideRockets,
			Name:                "Riverside Rockets",
			AgeGroup:            team.AgeGroupU10,
			PlayersOnField:      8,
			Periods:             2,
			MinutesPerPeriod:    30,
			DedicatedGoalkeeper: true,
			MinPlayersToStart:   6,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
	}
}

func SeedPlayers() []player.Player {
	lions := []struct {
		id      string
		name    string
		jersey  int
		minutes int
	}{
		{"lions-01", "Ava Martin", 1, 40},
		{"lions-02", "Ben Okafor", 4, 35},
		{"lions-03", "Cleo Diaz", 7, 45},
		{"lions-04", "Dev Patel", 9, 30},
		{"lions-05", "Ella Novak", 10, 40},
		{"lions-06", "Finn Larsen", 11, 50},
	}

	out := make([]player.Player, 0, len(lions)+2)
	for _, p := range lions {
		jersey := p.jersey
		out = append(out, player.Player{
			ID:                  p.id,
			TeamID:              TeamIDLittleLions,
			Name:                p.name,
			JerseyNumber:        &jersey,
			CanPlayAttack:       true,
			CanPlayDefense:      true,
			SeasonMinutesPlayed: p.minutes,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		})
	}

	out = append(out,
		player.Player{
			ID:                "rockets-01",
			TeamID:            TeamIDRiversideRockets,
			Name:              "Gia Romano",
			CanPlayGoalkeeper: true,
			CreatedAt:         seedTime,
			UpdatedAt:         seedTime,
		},
		player.Player{
			ID:            "rockets-02",
			TeamID:        TeamIDRiversideRockets,
			Name:          "Hugo Brandt",
			CanPlayAttack: true,
			CreatedAt:     seedTime,
			UpdatedAt:     seedTime,
		},
	)
	return out
}

func SeedGames() []fixture.Game {
	return []fixture.Game{
		{
			ID:        GameIDLionsOpener,
			TeamID:    TeamIDLittleLions,
			Opponent:  "Westside Cubs",
			KickoffAt: time.Date(2026, 9, 5, 9, 30, 0, 0, time.UTC),
			Location:  "Memorial Park Field 2",
			Availability: map[string]bool{
				"lions-01": true,
				"lions-02": true,
				"lions-03": true,
				"lions-04": true,
				"lions-05": true,
				"lions-06": false,
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}
