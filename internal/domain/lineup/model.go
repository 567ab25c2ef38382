package lineup

import (
	"fmt"
	"strings"
)

// PlayerID identifies a roster entry across the engine and its collaborators.
type PlayerID = string

// SubstitutionIntensity controls how many bench players rotate in per checkpoint
// and which minutes of a period are checkpoints.
type SubstitutionIntensity string

const (
	IntensityFrequent   SubstitutionIntensity = "frequent"
	IntensityBalanced   SubstitutionIntensity = "balanced"
	IntensityInfrequent SubstitutionIntensity = "infrequent"
)

func ParseIntensity(v string) (SubstitutionIntensity, error) {
	switch SubstitutionIntensity(strings.ToLower(strings.TrimSpace(v))) {
	case IntensityFrequent:
		return IntensityFrequent, nil
	case IntensityBalanced, "":
		return IntensityBalanced, nil
	case IntensityInfrequent:
		return IntensityInfrequent, nil
	default:
		return "", fmt.Errorf("invalid substitution intensity %q", v)
	}
}

// GameConfig is fixed once a game starts.
type GameConfig struct {
	MinutesPerPeriod  int `json:"minutesPerPeriod"`
	Periods           int `json:"periods"`
	PlayersOnField    int `json:"playersOnField"`
	MinPlayersToStart int `json:"minPlayersToStart"`
}

func (c GameConfig) Validate() error {
	if c.MinutesPerPeriod <= 0 {
		return fmt.Errorf("minutes per period must be greater than zero")
	}
	if c.Periods <= 0 {
		return fmt.Errorf("periods must be greater than zero")
	}
	if c.PlayersOnField <= 0 {
		return fmt.Errorf("players on field must be greater than zero")
	}
	if c.MinPlayersToStart <= 0 {
		return fmt.Errorf("min players to start must be greater than zero")
	}
	if c.MinPlayersToStart > c.PlayersOnField {
		return fmt.Errorf("min players to start (%d) cannot exceed players on field (%d)", c.MinPlayersToStart, c.PlayersOnField)
	}

	return nil
}

// TotalPlayerMinutes is the number of player-minutes one full game offers.
func (c GameConfig) TotalPlayerMinutes() int {
	return c.PlayersOnField * c.MinutesPerPeriod * c.Periods
}

// PlayerSeasonSnapshot is the season total of a player before this game.
type PlayerSeasonSnapshot struct {
	ID                  PlayerID
	Name                string
	SeasonMinutesPlayed int
}

type PlayerAvailability struct {
	ID          PlayerID
	IsAvailable bool
}

// PlayerGameRuntime is the per-player record tracked for one game.
type PlayerGameRuntime struct {
	ID                        PlayerID `json:"id"`
	Name                      string   `json:"name"`
	SeasonMinutesBeforeGame   int      `json:"seasonMinutesBeforeGame"`
	IsAvailable               bool     `json:"isAvailable"`
	IsInjured                 bool     `json:"isInjured"`
	IsOnField                 bool     `json:"isOnField"`
	MinutesThisGame           int      `json:"minutesThisGame"`
	ContinuousMinutesThisGame int      `json:"continuousMinutesThisGame"`
}

func (p PlayerGameRuntime) eligible() bool {
	return p.IsAvailable && !p.IsInjured
}

type GameStatus string

const (
	StatusNotStarted GameStatus = "notStarted"
	StatusForfeit    GameStatus = "forfeit"
	StatusNoSubGame  GameStatus = "noSubGame"
	StatusNormalGame GameStatus = "normalGame"
	StatusFinished   GameStatus = "finished"
)

// Terminal reports whether the clock can no longer move.
func (s GameStatus) Terminal() bool {
	return s == StatusForfeit || s == StatusFinished
}

type EventType string

const (
	EventInitialLineup EventType = "initialLineup"
	EventSubstitution  EventType = "substitution"
	EventQuarterBreak  EventType = "quarterBreak"
	EventInjury        EventType = "injury"
	EventRecovery      EventType = "recovery"
)

// Event is an append-only lineup log entry. Injured ids go in PlayersOut and
// recovered ids in PlayersIn.
type Event struct {
	TimeMinute     int        `json:"timeMinute"`
	Type           EventType  `json:"type"`
	PlayersOnField []PlayerID `json:"playersOnField"`
	PlayersIn      []PlayerID `json:"playersIn"`
	PlayersOut     []PlayerID `json:"playersOut"`
}

// GameState is the aggregate root of one game. It has a single owner.
type GameState struct {
	Config              GameConfig            `json:"config"`
	Intensity           SubstitutionIntensity `json:"intensity"`
	Status              GameStatus            `json:"status"`
	CurrentQuarter      int                   `json:"currentQuarter"`
	MinuteInQuarter     int                   `json:"minuteInQuarter"`
	TotalMinutesElapsed int                   `json:"totalMinutesElapsed"`
	Players             []PlayerGameRuntime   `json:"players"`
	Events              []Event               `json:"events"`
}

func (s *GameState) indexOf(id PlayerID) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Player returns the runtime record for id.
func (s GameState) Player(id PlayerID) (PlayerGameRuntime, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return PlayerGameRuntime{}, false
	}
	return s.Players[idx], true
}

// OnFieldIDs lists on-field players in roster order.
func (s GameState) OnFieldIDs() []PlayerID {
	out := make([]PlayerID, 0, s.Config.PlayersOnField)
	for _, p := range s.Players {
		if p.IsOnField {
			out = append(out, p.ID)
		}
	}
	return out
}

// BenchIDs lists available, uninjured players who are off the field.
func (s GameState) BenchIDs() []PlayerID {
	out := make([]PlayerID, 0)
	for _, p := range s.Players {
		if p.eligible() && !p.IsOnField {
			out = append(out, p.ID)
		}
	}
	return out
}

func (s GameState) benchCount() int {
	n := 0
	for _, p := range s.Players {
		if p.eligible() && !p.IsOnField {
			n++
		}
	}
	return n
}

// Clone returns a deep copy safe to hand to readers.
func (s GameState) Clone() GameState {
	out := s
	out.Players = append([]PlayerGameRuntime(nil), s.Players...)
	out.Events = make([]Event, len(s.Events))
	for i, e := range s.Events {
		out.Events[i] = cloneEvent(e)
	}
	return out
}

func cloneEvent(e Event) Event {
	e.PlayersOnField = append([]PlayerID{}, e.PlayersOnField...)
	e.PlayersIn = append([]PlayerID{}, e.PlayersIn...)
	e.PlayersOut = append([]PlayerID{}, e.PlayersOut...)
	return e
}
