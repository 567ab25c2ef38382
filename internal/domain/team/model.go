package team

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
)

type AgeGroup string

const (
	AgeGroupU6  AgeGroup = "U6"
	AgeGroupU7  AgeGroup = "U7"
	AgeGroupU8  AgeGroup = "U8"
	AgeGroupU9  AgeGroup = "U9"
	AgeGroupU10 AgeGroup = "U10"
	AgeGroupU11 AgeGroup = "U11"
	AgeGroupU12 AgeGroup = "U12"
	AgeGroupU13 AgeGroup = "U13"
	AgeGroupU14 AgeGroup = "U14"
	AgeGroupU15 AgeGroup = "U15"
	AgeGroupU16 AgeGroup = "U16"
	AgeGroupU17 AgeGroup = "U17"
)

var AllAgeGroups = []AgeGroup{
	AgeGroupU6, AgeGroupU7, AgeGroupU8, AgeGroupU9, AgeGroupU10, AgeGroupU11,
	AgeGroupU12, AgeGroupU13, AgeGroupU14, AgeGroupU15, AgeGroupU16, AgeGroupU17,
}

func ParseAgeGroup(v string) (AgeGroup, error) {
	group := AgeGroup(strings.ToUpper(strings.TrimSpace(v)))
	for _, known := range AllAgeGroups {
		if group == known {
			return group, nil
		}
	}
	return "", fmt.Errorf("invalid age group %q", v)
}

// Team is a youth squad and the match format it plays.
type Team struct {
	ID                  string
	Name                string
	AgeGroup            AgeGroup
	PlayersOnField      int
	Periods             int
	MinutesPerPeriod    int
	DedicatedGoalkeeper bool
	MinPlayersToStart   int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if _, err := ParseAgeGroup(string(t.AgeGroup)); err != nil {
		return err
	}
	if err := t.GameConfig().Validate(); err != nil {
		return fmt.Errorf("team match format: %w", err)
	}

	return nil
}

// GameConfig derives the engine configuration for a game of this team.
func (t Team) GameConfig() lineup.GameConfig {
	return lineup.GameConfig{
		MinutesPerPeriod:  t.MinutesPerPeriod,
		Periods:           t.Periods,
		PlayersOnField:    t.PlayersOnField,
		MinPlayersToStart: t.MinPlayersToStart,
	}
}
