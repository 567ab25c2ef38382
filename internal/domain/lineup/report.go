package lineup

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders one event log line using the players' current counters.
func Describe(event Event, state GameState) string {
	label := fmt.Sprintf("%d'", event.TimeMinute)

	switch event.Type {
	case EventInitialLineup:
		return fmt.Sprintf("%s: INITIAL - %s", label, summarize(state, event.PlayersOnField))
	case EventQuarterBreak:
		return fmt.Sprintf("%s: QUARTER BREAK", label)
	case EventSubstitution:
		return fmt.Sprintf("%s: SUB - OUT: [%s]  IN: [%s]", label,
			summarize(state, event.PlayersOut), summarize(state, event.PlayersIn))
	case EventInjury:
		return fmt.Sprintf("%s: INJURY - [%s]", label, summarize(state, event.PlayersOut))
	case EventRecovery:
		return fmt.Sprintf("%s: RECOVERY - [%s]", label, summarize(state, event.PlayersIn))
	default:
		return fmt.Sprintf("%s: %s", label, event.Type)
	}
}

// DescribeAll renders the whole event log in order.
func DescribeAll(state GameState) []string {
	out := make([]string, 0, len(state.Events))
	for _, ev := range state.Events {
		out = append(out, Describe(ev, state))
	}
	return out
}

func summarize(state GameState, ids []PlayerID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		p, ok := state.Player(id)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (c:%d g:%d s:%d)",
			p.Name, p.ContinuousMinutesThisGame, p.MinutesThisGame, p.SeasonMinutesBeforeGame))
	}
	return strings.Join(parts, ", ")
}

type PlayerMinutes struct {
	ID      PlayerID `json:"id"`
	Name    string   `json:"name"`
	Minutes int      `json:"minutes"`
}

// Report summarizes a game for the sideline after the final whistle.
type Report struct {
	Status        GameStatus      `json:"status"`
	TotalMinutes  int             `json:"totalMinutes"`
	MinutesPlayed []PlayerMinutes `json:"minutesPlayed"`
	NotAvailable  []string        `json:"notAvailable"`
	Injured       []string        `json:"injured"`
	Substitutions int             `json:"substitutions"`
	EventLog      []string        `json:"eventLog"`
}

func BuildReport(state GameState) Report {
	report := Report{
		Status:        state.Status,
		TotalMinutes:  state.TotalMinutesElapsed,
		MinutesPlayed: make([]PlayerMinutes, 0, len(state.Players)),
		NotAvailable:  make([]string, 0),
		Injured:       make([]string, 0),
		EventLog:      DescribeAll(state),
	}

	for _, p := range state.Players {
		if !p.IsAvailable {
			report.NotAvailable = append(report.NotAvailable, p.Name)
			continue
		}
		report.MinutesPlayed = append(report.MinutesPlayed, PlayerMinutes{
			ID:      p.ID,
			Name:    p.Name,
			Minutes: p.MinutesThisGame,
		})
		if p.IsInjured {
			report.Injured = append(report.Injured, p.Name)
		}
	}

	sort.SliceStable(report.MinutesPlayed, func(i, j int) bool {
		if report.MinutesPlayed[i].Minutes != report.MinutesPlayed[j].Minutes {
			return report.MinutesPlayed[i].Minutes > report.MinutesPlayed[j].Minutes
		}
		return strings.ToLower(report.MinutesPlayed[i].Name) < strings.ToLower(report.MinutesPlayed[j].Name)
	})
	sort.Strings(report.NotAvailable)
	sort.Strings(report.Injured)

	for _, ev := range state.Events {
		if ev.Type == EventSubstitution {
			report.Substitutions++
		}
	}

	return report
}
