package usecase

import (
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
)

type RunPhase string

const (
	PhasePreKickoff          RunPhase = "preKickoff"
	PhaseRunning             RunPhase = "running"
	PhasePendingSubstitution RunPhase = "pendingSubstitution"
	PhaseFinished            RunPhase = "finished"
)

// ExpiryPolicy decides what happens to a pending substitution whose
// countdown reaches zero.
type ExpiryPolicy string

const (
	ExpiryStay      ExpiryPolicy = "stay"
	ExpiryAutoApply ExpiryPolicy = "auto_apply"
	ExpiryExpire    ExpiryPolicy = "expire"
)

func ParseExpiryPolicy(v string) (ExpiryPolicy, error) {
	switch ExpiryPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case ExpiryStay, "":
		return ExpiryStay, nil
	case ExpiryAutoApply:
		return ExpiryAutoApply, nil
	case ExpiryExpire:
		return ExpiryExpire, nil
	default:
		return "", fmt.Errorf("%w: unknown countdown expiry policy %q", ErrInvalidInput, v)
	}
}

const DefaultCountdownSeconds = 60

var allowedSpeeds = map[int]struct{}{1: {}, 5: {}, 10: {}}

type SubstitutionPair struct {
	InID    lineup.PlayerID `json:"inId"`
	InName  string          `json:"inName"`
	OutID   lineup.PlayerID `json:"outId"`
	OutName string          `json:"outName"`
}

type PendingSubstitution struct {
	ScheduledAtMinute int                `json:"scheduledAtMinute"`
	CountdownSeconds  int                `json:"countdownSeconds"`
	SecondsRemaining  int                `json:"secondsRemaining"`
	InIDs             []lineup.PlayerID  `json:"inIds"`
	OutIDs            []lineup.PlayerID  `json:"outIds"`
	Pairs             []SubstitutionPair `json:"pairs"`
}

func (p *PendingSubstitution) clone() *PendingSubstitution {
	if p == nil {
		return nil
	}
	out := *p
	out.InIDs = append([]lineup.PlayerID(nil), p.InIDs...)
	out.OutIDs = append([]lineup.PlayerID(nil), p.OutIDs...)
	out.Pairs = append([]SubstitutionPair(nil), p.Pairs...)
	return &out
}

// Update is the snapshot pushed to listeners after every mutation. Events
// holds only what the mutation appended.
type Update struct {
	SessionID    string               `json:"sessionId"`
	Phase        RunPhase             `json:"phase"`
	Paused       bool                 `json:"paused"`
	Speed        int                  `json:"speed"`
	ClockSeconds int                  `json:"clockSeconds"`
	Pending      *PendingSubstitution `json:"pending,omitempty"`
	State        lineup.GameState     `json:"state"`
	Events       []lineup.Event       `json:"events"`
}

type LiveSessionOptions struct {
	CountdownSeconds int
	Expiry           ExpiryPolicy
	// Publish is called with the session lock held and must not block.
	Publish func(Update)
}

// LiveSession drives one game in wall-clock time. A single mutex serializes
// timer ticks and operator actions so the game state has one writer.
type LiveSession struct {
	mu sync.Mutex

	id        string
	engine    lineup.Engine
	state     lineup.GameState
	countdown int
	expiry    ExpiryPolicy
	publish   func(Update)

	phase           RunPhase
	paused          bool
	speed           int
	clockSeconds    int
	consumedMinutes int
	pending         *PendingSubstitution
}

func NewLiveSession(id string, engine lineup.Engine, state lineup.GameState, opts LiveSessionOptions) *LiveSession {
	countdown := opts.CountdownSeconds
	if countdown <= 0 {
		countdown = DefaultCountdownSeconds
	}
	expiry := opts.Expiry
	if expiry == "" {
		expiry = ExpiryStay
	}
	publish := opts.Publish
	if publish == nil {
		publish = func(Update) {}
	}

	return &LiveSession{
		id:        id,
		engine:    engine,
		state:     state,
		countdown: countdown,
		expiry:    expiry,
		publish:   publish,
		phase:     PhasePreKickoff,
		speed:     1,
	}
}

func (s *LiveSession) ID() string {
	return s.id
}

func (s *LiveSession) Snapshot() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked(nil)
}

// StartWhistle begins the clock. A forfeited game cannot be played and goes
// straight to finished.
func (s *LiveSession) StartWhistle() (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePreKickoff {
		return Update{}, fmt.Errorf("%w: game already kicked off (phase=%s)", ErrConflict, s.phase)
	}

	s.clockSeconds = 0
	s.consumedMinutes = 0
	s.pending = nil
	s.paused = false
	if s.state.Status.Terminal() {
		s.phase = PhaseFinished
	} else {
		s.phase = PhaseRunning
	}

	return s.emitLocked(nil), nil
}

// TickOneSecond is driven by an external one-second timer.
func (s *LiveSession) TickOneSecond() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused || (s.phase != PhaseRunning && s.phase != PhasePendingSubstitution) {
		return
	}

	delta := max(1, s.speed)
	if s.pending != nil {
		s.pending.SecondsRemaining = max(0, s.pending.SecondsRemaining-delta)
		var events []lineup.Event
		if s.pending.SecondsRemaining == 0 {
			events = s.expirePendingLocked()
		}
		s.emitLocked(events)
		return
	}

	s.clockSeconds += delta
	s.emitLocked(s.catchUpLocked())
}

// catchUpLocked plays every whole minute the clock has passed. It stops at a
// checkpoint with a proposal; the remaining minutes wait for the operator.
func (s *LiveSession) catchUpLocked() []lineup.Event {
	var events []lineup.Event
	for s.consumedMinutes < s.clockSeconds/60 {
		s.consumedMinutes++
		events = append(events, s.engine.AdvanceOneMinute(&s.state)...)

		if s.state.Status == lineup.StatusFinished {
			s.phase = PhaseFinished
			s.pending = nil
			break
		}
		if !lineup.IsCheckpoint(s.state) {
			continue
		}
		if s.openPendingLocked() {
			break
		}
	}
	return events
}

func (s *LiveSession) openPendingLocked() bool {
	inIDs, outIDs := s.engine.ProposeSubstitution(s.state)
	if len(inIDs) == 0 {
		s.pending = nil
		s.phase = PhaseRunning
		return false
	}

	s.pending = &PendingSubstitution{
		ScheduledAtMinute: s.state.TotalMinutesElapsed,
		CountdownSeconds:  s.countdown,
		SecondsRemaining:  s.countdown,
		InIDs:             inIDs,
		OutIDs:            outIDs,
		Pairs:             s.pairsLocked(inIDs, outIDs),
	}
	s.phase = PhasePendingSubstitution
	return true
}

func (s *LiveSession) expirePendingLocked() []lineup.Event {
	switch s.expiry {
	case ExpiryAutoApply:
		return s.applyPendingLocked()
	case ExpiryExpire:
		s.pending = nil
		s.phase = PhaseRunning
	}
	return nil
}

func (s *LiveSession) applyPendingLocked() []lineup.Event {
	pending := s.pending
	s.pending = nil
	s.phase = PhaseRunning
	return s.engine.ApplySubstitution(&s.state, pending.InIDs, pending.OutIDs, s.state.TotalMinutesElapsed)
}

// ConfirmSubstitution applies the pending swap at any countdown value.
func (s *LiveSession) ConfirmSubstitution() (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return Update{}, fmt.Errorf("%w: no substitution is pending", ErrConflict)
	}

	return s.emitLocked(s.applyPendingLocked()), nil
}

func (s *LiveSession) TogglePause() (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseRunning && s.phase != PhasePendingSubstitution {
		return Update{}, fmt.Errorf("%w: cannot pause in phase %s", ErrConflict, s.phase)
	}

	s.paused = !s.paused
	return s.emitLocked(nil), nil
}

func (s *LiveSession) SetSpeed(speed int) (Update, error) {
	if _, ok := allowedSpeeds[speed]; !ok {
		return Update{}, fmt.Errorf("%w: speed must be 1, 5 or 10", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.speed = speed
	return s.emitLocked(nil), nil
}

func (s *LiveSession) MarkInjured(playerID string) (Update, error) {
	return s.playerAction(playerID, s.engine.MarkInjured, "injured")
}

func (s *LiveSession) MarkRecovered(playerID string) (Update, error) {
	return s.playerAction(playerID, s.engine.MarkRecovered, "recovered")
}

func (s *LiveSession) playerAction(
	playerID string,
	action func(lineup.PlayerID, *lineup.GameState) []lineup.Event,
	verb string,
) (Update, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return Update{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Player(playerID); !ok {
		return Update{}, fmt.Errorf("%w: player=%s is not in this game", ErrNotFound, playerID)
	}
	if s.phase == PhaseFinished {
		return Update{}, fmt.Errorf("%w: game is finished", ErrConflict)
	}

	events := action(playerID, &s.state)
	if len(events) == 0 {
		return Update{}, fmt.Errorf("%w: player=%s cannot be marked %s", ErrConflict, playerID, verb)
	}
	s.revalidatePendingLocked()

	return s.emitLocked(events), nil
}

// revalidatePendingLocked re-proposes when a pending pair no longer matches
// the lineup. The countdown restarts with the new proposal.
func (s *LiveSession) revalidatePendingLocked() {
	if s.pending == nil {
		return
	}
	for i := range s.pending.InIDs {
		in, okIn := s.state.Player(s.pending.InIDs[i])
		out, okOut := s.state.Player(s.pending.OutIDs[i])
		if !okIn || !okOut || in.IsOnField || !in.IsAvailable || in.IsInjured ||
			!out.IsOnField || out.IsInjured {
			s.openPendingLocked()
			return
		}
	}
}

func (s *LiveSession) pairsLocked(inIDs, outIDs []lineup.PlayerID) []SubstitutionPair {
	pairs := make([]SubstitutionPair, 0, len(inIDs))
	for i := range inIDs {
		in, _ := s.state.Player(inIDs[i])
		out, _ := s.state.Player(outIDs[i])
		pairs = append(pairs, SubstitutionPair{
			InID:    inIDs[i],
			InName:  in.Name,
			OutID:   outIDs[i],
			OutName: out.Name,
		})
	}
	return pairs
}

func (s *LiveSession) emitLocked(events []lineup.Event) Update {
	update := s.snapshotLocked(events)
	s.publish(update)
	return update
}

func (s *LiveSession) snapshotLocked(events []lineup.Event) Update {
	if events == nil {
		events = []lineup.Event{}
	}
	return Update{
		SessionID:    s.id,
		Phase:        s.phase,
		Paused:       s.paused,
		Speed:        s.speed,
		ClockSeconds: s.clockSeconds,
		Pending:      s.pending.clone(),
		State:        s.state.Clone(),
		Events:       events,
	}
}
