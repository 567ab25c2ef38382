package lineup

import (
	"errors"
	"math"
)

var ErrGameNotFinished = errors.New("game is not finished")

// MinutesToCredit computes what each player adds to their season total.
// Available, uninjured players get their game minutes. Absent players are
// charged the average share an available player could receive, so they do
// not jump the queue in later "least minutes" sorts. Injured players get
// nothing. Applying the result twice double-credits.
func MinutesToCredit(state GameState) (map[PlayerID]int, error) {
	if state.Status != StatusFinished {
		return nil, ErrGameNotFinished
	}

	availableCount := 0
	for _, p := range state.Players {
		if p.eligible() {
			availableCount++
		}
	}

	absentShare := 0
	if availableCount > 0 {
		absentShare = int(math.Round(float64(state.Config.TotalPlayerMinutes()) / float64(availableCount)))
	}

	out := make(map[PlayerID]int, len(state.Players))
	for _, p := range state.Players {
		switch {
		case !p.IsAvailable:
			out[p.ID] = absentShare
		case !p.IsInjured:
			out[p.ID] = p.MinutesThisGame
		}
	}

	return out, nil
}
