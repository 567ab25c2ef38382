package usecase

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
)

func testEngine(seed uint64) lineup.Engine {
	return lineup.NewEngine(lineup.WithRand(rand.New(rand.NewPCG(seed, seed+1))))
}

// newTestSession builds a 4-a-side game of four 10 minute periods with the
// given number of available players.
func newTestSession(t *testing.T, available int, opts LiveSessionOptions) *LiveSession {
	t.Helper()

	roster := make([]lineup.PlayerSeasonSnapshot, 0, 6)
	availability := make([]lineup.PlayerAvailability, 0, 6)
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("p%d", i+1)
		roster = append(roster, lineup.PlayerSeasonSnapshot{ID: id, Name: "Player " + id})
		availability = append(availability, lineup.PlayerAvailability{ID: id, IsAvailable: i < available})
	}

	engine := testEngine(7)
	state := engine.InitializeGame(lineup.GameConfig{
		MinutesPerPeriod:  10,
		Periods:           4,
		PlayersOnField:    4,
		MinPlayersToStart: 3,
	}, lineup.IntensityBalanced, roster, availability)

	return NewLiveSession("session-1", engine, state, opts)
}

func tickN(s *LiveSession, n int) {
	for i := 0; i < n; i++ {
		s.TickOneSecond()
	}
}

func countEventType(events []lineup.Event, typ lineup.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestLiveSession_TickBeforeWhistleIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	tickN(s, 120)

	got := s.Snapshot()
	if got.Phase != PhasePreKickoff {
		t.Fatalf("unexpected phase: got=%s want=%s", got.Phase, PhasePreKickoff)
	}
	if got.ClockSeconds != 0 || got.State.TotalMinutesElapsed != 0 {
		t.Fatalf("clock moved before kickoff: seconds=%d minutes=%d", got.ClockSeconds, got.State.TotalMinutesElapsed)
	}
}

func TestLiveSession_StartWhistleTwiceConflicts(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	if _, err := s.StartWhistle(); err != nil {
		t.Fatalf("start whistle: %v", err)
	}
	if _, err := s.StartWhistle(); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLiveSession_ForfeitGoesStraightToFinished(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 2, LiveSessionOptions{})
	got, err := s.StartWhistle()
	if err != nil {
		t.Fatalf("start whistle: %v", err)
	}
	if got.Phase != PhaseFinished {
		t.Fatalf("unexpected phase: got=%s want=%s", got.Phase, PhaseFinished)
	}
	if got.State.Status != lineup.StatusForfeit {
		t.Fatalf("unexpected status: got=%s", got.State.Status)
	}
}

func TestLiveSession_CheckpointOpensPendingAndFreezesClock(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	if _, err := s.StartWhistle(); err != nil {
		t.Fatalf("start whistle: %v", err)
	}
	if _, err := s.SetSpeed(10); err != nil {
		t.Fatalf("set speed: %v", err)
	}

	tickN(s, 17)
	if got := s.Snapshot(); got.Pending != nil || got.State.TotalMinutesElapsed != 2 {
		t.Fatalf("unexpected state before checkpoint: pending=%v minutes=%d", got.Pending, got.State.TotalMinutesElapsed)
	}

	s.TickOneSecond()
	got := s.Snapshot()
	if got.Phase != PhasePendingSubstitution || got.Pending == nil {
		t.Fatalf("expected pending substitution, got phase=%s", got.Phase)
	}
	if got.Pending.ScheduledAtMinute != 3 {
		t.Fatalf("unexpected scheduled minute: got=%d want=3", got.Pending.ScheduledAtMinute)
	}
	if len(got.Pending.Pairs) != 1 || got.Pending.SecondsRemaining != DefaultCountdownSeconds {
		t.Fatalf("unexpected pending: %+v", got.Pending)
	}
	pair := got.Pending.Pairs[0]
	if pair.InName == "" || pair.OutName == "" {
		t.Fatalf("pair names not resolved: %+v", pair)
	}

	tickN(s, 2)
	got = s.Snapshot()
	if got.ClockSeconds != 180 || got.State.TotalMinutesElapsed != 3 {
		t.Fatalf("clock advanced while pending: seconds=%d minutes=%d", got.ClockSeconds, got.State.TotalMinutesElapsed)
	}
	if got.Pending.SecondsRemaining != DefaultCountdownSeconds-20 {
		t.Fatalf("unexpected countdown: got=%d", got.Pending.SecondsRemaining)
	}

	confirmed, err := s.ConfirmSubstitution()
	if err != nil {
		t.Fatalf("confirm substitution: %v", err)
	}
	if confirmed.Phase != PhaseRunning || confirmed.Pending != nil {
		t.Fatalf("pending not cleared: phase=%s", confirmed.Phase)
	}
	if len(confirmed.Events) != 1 || confirmed.Events[0].Type != lineup.EventSubstitution {
		t.Fatalf("unexpected events: %+v", confirmed.Events)
	}
	if confirmed.Events[0].TimeMinute != 3 {
		t.Fatalf("unexpected substitution minute: got=%d", confirmed.Events[0].TimeMinute)
	}
	inPlayer, _ := confirmed.State.Player(pair.InID)
	outPlayer, _ := confirmed.State.Player(pair.OutID)
	if !inPlayer.IsOnField || outPlayer.IsOnField {
		t.Fatalf("swap not applied: in=%+v out=%+v", inPlayer, outPlayer)
	}

	s.TickOneSecond()
	if got := s.Snapshot(); got.ClockSeconds != 190 {
		t.Fatalf("clock did not resume: got=%d", got.ClockSeconds)
	}
}

func TestLiveSession_ConfirmWithoutPendingConflicts(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	if _, err := s.ConfirmSubstitution(); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLiveSession_CountdownExpiryPolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		expiry      ExpiryPolicy
		wantPending bool
		wantSubs    int
	}{
		{name: "stay", expiry: ExpiryStay, wantPending: true, wantSubs: 0},
		{name: "auto apply", expiry: ExpiryAutoApply, wantPending: false, wantSubs: 1},
		{name: "expire", expiry: ExpiryExpire, wantPending: false, wantSubs: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession(t, 6, LiveSessionOptions{Expiry: tc.expiry})
			if _, err := s.StartWhistle(); err != nil {
				t.Fatalf("start whistle: %v", err)
			}
			if _, err := s.SetSpeed(10); err != nil {
				t.Fatalf("set speed: %v", err)
			}
			tickN(s, 18)
			if s.Snapshot().Pending == nil {
				t.Fatalf("expected pending substitution at minute 3")
			}

			tickN(s, 6)
			got := s.Snapshot()
			if (got.Pending != nil) != tc.wantPending {
				t.Fatalf("unexpected pending: got=%v want=%v", got.Pending != nil, tc.wantPending)
			}
			if subs := countEventType(got.State.Events, lineup.EventSubstitution); subs != tc.wantSubs {
				t.Fatalf("unexpected substitution count: got=%d want=%d", subs, tc.wantSubs)
			}
			if tc.wantPending && got.Pending.SecondsRemaining != 0 {
				t.Fatalf("countdown should floor at zero, got %d", got.Pending.SecondsRemaining)
			}
		})
	}
}

func TestLiveSession_PauseFreezesClockAndCountdown(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	if _, err := s.TogglePause(); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict before kickoff, got %v", err)
	}
	if _, err := s.StartWhistle(); err != nil {
		t.Fatalf("start whistle: %v", err)
	}

	tickN(s, 30)
	paused, err := s.TogglePause()
	if err != nil {
		t.Fatalf("toggle pause: %v", err)
	}
	if !paused.Paused {
		t.Fatalf("expected paused")
	}

	tickN(s, 100)
	if got := s.Snapshot(); got.ClockSeconds != 30 {
		t.Fatalf("clock moved while paused: got=%d", got.ClockSeconds)
	}

	resumed, err := s.TogglePause()
	if err != nil {
		t.Fatalf("toggle pause: %v", err)
	}
	if resumed.Paused {
		t.Fatalf("expected resumed")
	}
	s.TickOneSecond()
	if got := s.Snapshot(); got.ClockSeconds != 31 {
		t.Fatalf("clock did not resume: got=%d", got.ClockSeconds)
	}
}

func TestLiveSession_SetSpeedRejectsUnsupportedValues(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	for _, speed := range []int{0, 2, 100, -1} {
		if _, err := s.SetSpeed(speed); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("speed %d: expected ErrInvalidInput, got %v", speed, err)
		}
	}
}

func TestLiveSession_InjuryRevalidatesPending(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	if _, err := s.StartWhistle(); err != nil {
		t.Fatalf("start whistle: %v", err)
	}
	if _, err := s.SetSpeed(10); err != nil {
		t.Fatalf("set speed: %v", err)
	}
	tickN(s, 18)

	pending := s.Snapshot().Pending
	if pending == nil {
		t.Fatalf("expected pending substitution")
	}
	outID := pending.OutIDs[0]

	got, err := s.MarkInjured(outID)
	if err != nil {
		t.Fatalf("mark injured: %v", err)
	}
	if got.Pending == nil {
		t.Fatalf("expected a fresh proposal with one bench player left")
	}
	if got.Pending.OutIDs[0] == outID {
		t.Fatalf("injured player still proposed to come off")
	}
	in, _ := got.State.Player(got.Pending.InIDs[0])
	if in.IsOnField || in.IsInjured {
		t.Fatalf("proposed incoming player is not on the bench: %+v", in)
	}

	// Injuring another starter uses up the last bench player.
	onField := got.State.OnFieldIDs()
	got, err = s.MarkInjured(onField[0])
	if err != nil {
		t.Fatalf("mark injured: %v", err)
	}
	if got.Pending != nil || got.Phase != PhaseRunning {
		t.Fatalf("expected pending cleared, phase=%s", got.Phase)
	}
	if len(got.State.OnFieldIDs()) != 4 {
		t.Fatalf("unexpected on-field count: %d", len(got.State.OnFieldIDs()))
	}
}

func TestLiveSession_PlayerActionsReportErrors(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, 6, LiveSessionOptions{})
	if _, err := s.StartWhistle(); err != nil {
		t.Fatalf("start whistle: %v", err)
	}

	if _, err := s.MarkInjured("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.MarkRecovered("p1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for recovering a healthy player, got %v", err)
	}

	bench := s.Snapshot().State.BenchIDs()
	if _, err := s.MarkInjured(bench[0]); err != nil {
		t.Fatalf("mark injured: %v", err)
	}
	if _, err := s.MarkInjured(bench[0]); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for double injury, got %v", err)
	}
	got, err := s.MarkRecovered(bench[0])
	if err != nil {
		t.Fatalf("mark recovered: %v", err)
	}
	if len(got.Events) != 1 || got.Events[0].Type != lineup.EventRecovery {
		t.Fatalf("unexpected events: %+v", got.Events)
	}
}

func TestLiveSession_RunsToFinishAndPublishes(t *testing.T) {
	t.Parallel()

	var updates []Update
	s := newTestSession(t, 4, LiveSessionOptions{
		Publish: func(u Update) { updates = append(updates, u) },
	})
	if _, err := s.StartWhistle(); err != nil {
		t.Fatalf("start whistle: %v", err)
	}
	if _, err := s.SetSpeed(10); err != nil {
		t.Fatalf("set speed: %v", err)
	}

	tickN(s, 240)
	got := s.Snapshot()
	if got.Phase != PhaseFinished || got.State.Status != lineup.StatusFinished {
		t.Fatalf("unexpected end state: phase=%s status=%s", got.Phase, got.State.Status)
	}
	if got.State.TotalMinutesElapsed != 40 {
		t.Fatalf("unexpected total minutes: %d", got.State.TotalMinutesElapsed)
	}
	if countEventType(got.State.Events, lineup.EventQuarterBreak) != 4 {
		t.Fatalf("expected four quarter breaks")
	}

	published := len(updates)
	tickN(s, 10)
	if len(updates) != published {
		t.Fatalf("ticks after the final whistle should not publish")
	}
	if published != 242 {
		t.Fatalf("unexpected publish count: got=%d want=242", published)
	}
}
