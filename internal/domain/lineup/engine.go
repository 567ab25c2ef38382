package lineup

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Engine holds the pure state transitions of a game. It never reads the clock;
// callers invoke it once per logical minute or per user action.
type Engine interface {
	InitializeGame(config GameConfig, intensity SubstitutionIntensity, roster []PlayerSeasonSnapshot, availability []PlayerAvailability) GameState
	AdvanceOneMinute(state *GameState) []Event
	SimulateFullGame(state *GameState) GameState
	ProposeSubstitution(state GameState) (inIDs, outIDs []PlayerID)
	ApplySubstitution(state *GameState, inIDs, outIDs []PlayerID, timeMinute int) []Event
	MarkInjured(playerID PlayerID, state *GameState) []Event
	MarkRecovered(playerID PlayerID, state *GameState) []Event
}

var _ Engine = (*DefaultEngine)(nil)

type Option func(*DefaultEngine)

// WithRand replaces the tie-break source. The engine must then be used from
// a single goroutine, since *rand.Rand is not safe for concurrent use.
func WithRand(r *rand.Rand) Option {
	return func(e *DefaultEngine) {
		if r != nil {
			e.shuffle = r.Shuffle
		}
	}
}

// WithAutoSubstitute makes AdvanceOneMinute apply the proposal at every
// checkpoint instead of leaving it to an operator.
func WithAutoSubstitute(enabled bool) Option {
	return func(e *DefaultEngine) {
		e.autoSubstitute = enabled
	}
}

type DefaultEngine struct {
	shuffle        func(n int, swap func(i, j int))
	autoSubstitute bool
}

func NewEngine(opts ...Option) *DefaultEngine {
	e := &DefaultEngine{shuffle: rand.Shuffle}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *DefaultEngine) AutoSubstitute() bool {
	return e.autoSubstitute
}

func (e *DefaultEngine) InitializeGame(
	config GameConfig,
	intensity SubstitutionIntensity,
	roster []PlayerSeasonSnapshot,
	availability []PlayerAvailability,
) GameState {
	availableByID := make(map[PlayerID]bool, len(availability))
	for _, a := range availability {
		availableByID[a.ID] = a.IsAvailable
	}

	players := make([]PlayerGameRuntime, 0, len(roster))
	for _, snapshot := range roster {
		players = append(players, PlayerGameRuntime{
			ID:                      snapshot.ID,
			Name:                    snapshot.Name,
			SeasonMinutesBeforeGame: snapshot.SeasonMinutesPlayed,
			IsAvailable:             availableByID[snapshot.ID],
		})
	}

	state := GameState{
		Config:    config,
		Intensity: intensity,
		Status:    StatusNotStarted,
		Players:   players,
		Events:    []Event{},
	}

	eligible := make([]int, 0, len(players))
	for i, p := range players {
		if p.eligible() {
			eligible = append(eligible, i)
		}
	}

	availableCount := len(eligible)
	switch {
	case availableCount < config.MinPlayersToStart:
		state.Status = StatusForfeit
		return state
	case availableCount == config.MinPlayersToStart || availableCount == config.PlayersOnField:
		for _, idx := range eligible {
			state.Players[idx].IsOnField = true
		}
		state.Status = StatusNoSubGame
	default:
		e.shuffle(len(eligible), func(i, j int) { eligible[i], eligible[j] = eligible[j], eligible[i] })
		sort.SliceStable(eligible, func(i, j int) bool {
			return state.Players[eligible[i]].SeasonMinutesBeforeGame < state.Players[eligible[j]].SeasonMinutesBeforeGame
		})
		// Fewer than a full field but above the minimum: everyone starts.
		for _, idx := range eligible[:min(len(eligible), config.PlayersOnField)] {
			state.Players[idx].IsOnField = true
		}
		state.Status = StatusNormalGame
	}

	state.CurrentQuarter = 1
	onField := state.OnFieldIDs()
	state.Events = append(state.Events, Event{
		TimeMinute:     0,
		Type:           EventInitialLineup,
		PlayersOnField: onField,
		PlayersIn:      append([]PlayerID(nil), onField...),
		PlayersOut:     []PlayerID{},
	})

	return state
}

func (e *DefaultEngine) AdvanceOneMinute(state *GameState) []Event {
	if state == nil || !running(state.Status) {
		return nil
	}

	before := len(state.Events)
	for i := range state.Players {
		if state.Players[i].IsOnField {
			state.Players[i].MinutesThisGame++
			state.Players[i].ContinuousMinutesThisGame++
		}
	}
	state.MinuteInQuarter++
	state.TotalMinutesElapsed++

	if state.MinuteInQuarter == state.Config.MinutesPerPeriod {
		endQuarter(state)
	} else if e.autoSubstitute && IsCheckpoint(*state) {
		if inIDs, outIDs := e.ProposeSubstitution(*state); len(inIDs) > 0 {
			e.ApplySubstitution(state, inIDs, outIDs, state.TotalMinutesElapsed)
		}
	}

	return newEvents(state, before)
}

func (e *DefaultEngine) SimulateFullGame(state *GameState) GameState {
	if state == nil {
		return GameState{}
	}
	for running(state.Status) {
		e.AdvanceOneMinute(state)
	}
	return *state
}

func (e *DefaultEngine) ProposeSubstitution(state GameState) ([]PlayerID, []PlayerID) {
	n := rotationCount(state)
	if n == 0 {
		return nil, nil
	}

	inIDs := e.selectIncoming(state, n)
	outIDs := e.selectOutgoing(state, len(inIDs))
	if len(outIDs) < len(inIDs) {
		inIDs = inIDs[:len(outIDs)]
	}
	if len(inIDs) == 0 {
		return nil, nil
	}

	return inIDs, outIDs
}

// ApplySubstitution performs the swap without re-validating that incoming
// players were on the bench or outgoing players were on the field. Empty
// lists still log a substitution event.
func (e *DefaultEngine) ApplySubstitution(state *GameState, inIDs, outIDs []PlayerID, timeMinute int) []Event {
	if state == nil || state.Status != StatusNormalGame {
		return nil
	}
	if len(inIDs) != len(outIDs) {
		return nil
	}

	before := len(state.Events)
	incoming := toSet(inIDs)
	outgoing := toSet(outIDs)
	for i := range state.Players {
		id := state.Players[i].ID
		if _, ok := incoming[id]; ok {
			state.Players[i].IsOnField = true
		} else if _, ok := outgoing[id]; ok {
			state.Players[i].IsOnField = false
			state.Players[i].ContinuousMinutesThisGame = 0
		}
	}

	state.Events = append(state.Events, Event{
		TimeMinute:     timeMinute,
		Type:           EventSubstitution,
		PlayersOnField: state.OnFieldIDs(),
		PlayersIn:      append([]PlayerID(nil), inIDs...),
		PlayersOut:     append([]PlayerID(nil), outIDs...),
	})

	return newEvents(state, before)
}

// MarkInjured takes an on-field player off at once. In a normal game the best
// ranked bench player replaces them without confirmation.
func (e *DefaultEngine) MarkInjured(playerID PlayerID, state *GameState) []Event {
	if state == nil || !running(state.Status) {
		return nil
	}
	idx := state.indexOf(playerID)
	if idx < 0 {
		return nil
	}
	if !state.Players[idx].IsAvailable || state.Players[idx].IsInjured {
		return nil
	}

	before := len(state.Events)
	state.Players[idx].IsInjured = true
	if state.Players[idx].IsOnField {
		state.Players[idx].IsOnField = false
		state.Players[idx].ContinuousMinutesThisGame = 0

		if state.Status == StatusNormalGame {
			if replacement := e.selectIncoming(*state, 1); len(replacement) == 1 {
				state.Players[state.indexOf(replacement[0])].IsOnField = true
			}
		}
	}

	state.Events = append(state.Events, Event{
		TimeMinute:     state.TotalMinutesElapsed,
		Type:           EventInjury,
		PlayersOnField: state.OnFieldIDs(),
		PlayersIn:      []PlayerID{},
		PlayersOut:     []PlayerID{playerID},
	})

	return newEvents(state, before)
}

// MarkRecovered returns an injured bench player to the rotation pool. It does
// not put them back on the field.
func (e *DefaultEngine) MarkRecovered(playerID PlayerID, state *GameState) []Event {
	if state == nil {
		return nil
	}
	idx := state.indexOf(playerID)
	if idx < 0 {
		return nil
	}
	if !state.Players[idx].IsInjured || state.Players[idx].IsOnField {
		return nil
	}

	before := len(state.Events)
	state.Players[idx].IsInjured = false
	state.Events = append(state.Events, Event{
		TimeMinute:     state.TotalMinutesElapsed,
		Type:           EventRecovery,
		PlayersOnField: state.OnFieldIDs(),
		PlayersIn:      []PlayerID{playerID},
		PlayersOut:     []PlayerID{},
	})

	return newEvents(state, before)
}

// CheckpointMinutes lists the completed minutes of a period at which a
// substitution is proposed.
func CheckpointMinutes(intensity SubstitutionIntensity, minutesPerPeriod int) []int {
	var table []int
	switch intensity {
	case IntensityFrequent:
		table = []int{2, 4, 6, 8}
	case IntensityInfrequent:
		table = []int{5}
	default:
		table = []int{3, 6, 9}
	}

	out := make([]int, 0, len(table))
	for _, minute := range table {
		if minute < minutesPerPeriod {
			out = append(out, minute)
		}
	}
	return out
}

// IsCheckpoint reports whether the minute just completed should trigger a
// substitution proposal. Only normal games rotate.
func IsCheckpoint(state GameState) bool {
	if state.Status != StatusNormalGame {
		return false
	}
	for _, minute := range CheckpointMinutes(state.Intensity, state.Config.MinutesPerPeriod) {
		if minute == state.MinuteInQuarter {
			return true
		}
	}
	return false
}

func running(status GameStatus) bool {
	return status == StatusNormalGame || status == StatusNoSubGame
}

func endQuarter(state *GameState) {
	state.Events = append(state.Events, Event{
		TimeMinute:     state.TotalMinutesElapsed,
		Type:           EventQuarterBreak,
		PlayersOnField: state.OnFieldIDs(),
		PlayersIn:      []PlayerID{},
		PlayersOut:     []PlayerID{},
	})

	// A break counts as a full rest; nobody is substituted.
	for i := range state.Players {
		state.Players[i].ContinuousMinutesThisGame = 0
	}

	state.CurrentQuarter++
	state.MinuteInQuarter = 0
	if state.CurrentQuarter > state.Config.Periods {
		state.Status = StatusFinished
	}
}

func rotationCount(state GameState) int {
	bench := state.benchCount()
	if bench == 0 {
		return 0
	}

	var n int
	switch state.Intensity {
	case IntensityFrequent:
		n = int(math.Ceil(float64(bench) / 4))
	case IntensityInfrequent:
		n = bench
	default:
		n = int(math.Ceil(float64(bench) / 2))
	}

	n = max(1, n)
	n = min(n, state.Config.PlayersOnField)
	return min(n, bench)
}

// selectIncoming ranks the bench by fewest game minutes, then fewest season
// minutes. Remaining ties fall to the pre-shuffle.
func (e *DefaultEngine) selectIncoming(state GameState, n int) []PlayerID {
	bench := make([]PlayerGameRuntime, 0)
	for _, p := range state.Players {
		if p.eligible() && !p.IsOnField {
			bench = append(bench, p)
		}
	}

	e.shuffle(len(bench), func(i, j int) { bench[i], bench[j] = bench[j], bench[i] })
	sort.SliceStable(bench, func(i, j int) bool {
		if bench[i].MinutesThisGame != bench[j].MinutesThisGame {
			return bench[i].MinutesThisGame < bench[j].MinutesThisGame
		}
		return bench[i].SeasonMinutesBeforeGame < bench[j].SeasonMinutesBeforeGame
	})

	return takeIDs(bench, n)
}

// selectOutgoing ranks the field by longest continuous stint, then most game
// minutes, then most season minutes.
func (e *DefaultEngine) selectOutgoing(state GameState, n int) []PlayerID {
	field := make([]PlayerGameRuntime, 0, state.Config.PlayersOnField)
	for _, p := range state.Players {
		if p.eligible() && p.IsOnField {
			field = append(field, p)
		}
	}

	e.shuffle(len(field), func(i, j int) { field[i], field[j] = field[j], field[i] })
	sort.SliceStable(field, func(i, j int) bool {
		if field[i].ContinuousMinutesThisGame != field[j].ContinuousMinutesThisGame {
			return field[i].ContinuousMinutesThisGame > field[j].ContinuousMinutesThisGame
		}
		if field[i].MinutesThisGame != field[j].MinutesThisGame {
			return field[i].MinutesThisGame > field[j].MinutesThisGame
		}
		return field[i].SeasonMinutesBeforeGame > field[j].SeasonMinutesBeforeGame
	})

	return takeIDs(field, n)
}

func takeIDs(players []PlayerGameRuntime, n int) []PlayerID {
	n = min(n, len(players))
	out := make([]PlayerID, 0, n)
	for _, p := range players[:n] {
		out = append(out, p.ID)
	}
	return out
}

func toSet(ids []PlayerID) map[PlayerID]struct{} {
	out := make(map[PlayerID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func newEvents(state *GameState, before int) []Event {
	if len(state.Events) <= before {
		return nil
	}
	out := make([]Event, 0, len(state.Events)-before)
	for _, ev := range state.Events[before:] {
		out = append(out, cloneEvent(ev))
	}
	return out
}
