package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/team"
	idgen "github.com/riskibarqy/touchline/internal/platform/id"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/platform/resilience"
)

const defaultCreditWorkers = 4

type LiveGameConfig struct {
	TickInterval     time.Duration
	CountdownSeconds int
	Expiry           ExpiryPolicy
	WorkerPoolSize   int
}

func (c LiveGameConfig) normalize() LiveGameConfig {
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.CountdownSeconds <= 0 {
		c.CountdownSeconds = DefaultCountdownSeconds
	}
	if c.Expiry == "" {
		c.Expiry = ExpiryStay
	}
	if c.WorkerPoolSize <= 0 {
		c.WorkerPoolSize = defaultCreditWorkers
	}
	return c
}

// StartLiveGameInput picks the roster of TeamID. When AvailablePlayerIDs is
// empty, attendance comes from the scheduled game, or everyone plays.
type StartLiveGameInput struct {
	TeamID             string
	GameID             string
	Intensity          string
	AvailablePlayerIDs []string
}

// FinishLiveGameResult splits the season credit into what was stored and
// what was not. Uncredited can be passed to CreditSeasonMinutes as is.
type FinishLiveGameResult struct {
	SessionID  string         `json:"sessionId"`
	TeamID     string         `json:"teamId"`
	GameID     string         `json:"gameId,omitempty"`
	Credited   map[string]int `json:"credited"`
	Uncredited map[string]int `json:"uncredited,omitempty"`
	Report     lineup.Report  `json:"report"`
}

type CreditSeasonMinutesInput struct {
	TeamID  string
	Minutes map[string]int
}

type CreditSeasonMinutesResult struct {
	TeamID     string         `json:"teamId"`
	Credited   map[string]int `json:"credited"`
	Uncredited map[string]int `json:"uncredited,omitempty"`
}

type liveEntry struct {
	teamID  string
	gameID  string
	session *LiveSession
	hub     *updateHub
	stop    context.CancelFunc
}

// LiveGameService owns the in-memory live sessions. Sessions do not survive
// a restart.
type LiveGameService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	gameRepo   fixture.Repository
	newEngine  func() lineup.Engine
	idGen      idgen.Generator
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	cfg        LiveGameConfig

	mu       sync.RWMutex
	sessions map[string]*liveEntry

	rootCtx  context.Context
	shutdown context.CancelFunc
	tickers  conc.WaitGroup
}

func NewLiveGameService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo fixture.Repository,
	newEngine func() lineup.Engine,
	idGen idgen.Generator,
	logger *logging.Logger,
	breaker *resilience.CircuitBreaker,
	cfg LiveGameConfig,
) *LiveGameService {
	if newEngine == nil {
		newEngine = func() lineup.Engine { return lineup.NewEngine() }
	}
	if logger == nil {
		logger = logging.Default()
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	return &LiveGameService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		newEngine:  newEngine,
		idGen:      idGen,
		logger:     logger,
		breaker:    breaker,
		cfg:        cfg.normalize(),
		sessions:   make(map[string]*liveEntry),
		rootCtx:    rootCtx,
		shutdown:   cancel,
	}
}

func (s *LiveGameService) Start(ctx context.Context, input StartLiveGameInput) (Update, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Start")
	defer span.End()

	intensity, err := lineup.ParseIntensity(input.Intensity)
	if err != nil {
		return Update{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := loadTeam(ctx, s.teamRepo, input.TeamID)
	if err != nil {
		return Update{}, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, item.ID, "")
	if err != nil {
		return Update{}, fmt.Errorf("list players by team: %w", err)
	}
	player.SortRoster(roster)

	cfg := item.GameConfig()
	var available map[string]bool
	gameID := strings.TrimSpace(input.GameID)
	if gameID != "" {
		game, err := loadGame(ctx, s.gameRepo, item.ID, gameID)
		if err != nil {
			return Update{}, err
		}
		cfg = game.ApplyFormat(cfg)
		available = game.Availability
	}
	if len(input.AvailablePlayerIDs) > 0 {
		available, err = explicitAvailability(roster, input.AvailablePlayerIDs)
		if err != nil {
			return Update{}, err
		}
	}
	if available == nil {
		available = make(map[string]bool, len(roster))
		for _, p := range roster {
			available[p.ID] = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return Update{}, fmt.Errorf("%w: game config: %v", ErrInvalidInput, err)
	}

	engine := s.newEngine()
	state := engine.InitializeGame(cfg, intensity, player.Snapshots(roster), player.Availability(roster, available))

	sessionID, err := s.idGen.NewID()
	if err != nil {
		return Update{}, fmt.Errorf("generate session id: %w", err)
	}

	hub := newUpdateHub()
	session := NewLiveSession(sessionID, engine, state, LiveSessionOptions{
		CountdownSeconds: s.cfg.CountdownSeconds,
		Expiry:           s.cfg.Expiry,
		Publish:          hub.publish,
	})

	tickCtx, stop := context.WithCancel(s.rootCtx)
	entry := &liveEntry{
		teamID:  item.ID,
		gameID:  gameID,
		session: session,
		hub:     hub,
		stop:    stop,
	}

	s.mu.Lock()
	s.sessions[sessionID] = entry
	s.mu.Unlock()

	s.tickers.Go(func() {
		s.runTicker(tickCtx, session)
	})

	s.logger.InfoContext(ctx, "live session started",
		"session_id", sessionID,
		"team_id", item.ID,
		"game_id", gameID,
		"status", state.Status,
		"intensity", intensity,
	)

	return session.Snapshot(), nil
}

func (s *LiveGameService) runTicker(ctx context.Context, session *LiveSession) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			session.TickOneSecond()
		}
	}
}

func (s *LiveGameService) List(ctx context.Context) []Update {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.List")
	defer span.End()

	s.mu.RLock()
	entries := make([]*liveEntry, 0, len(s.sessions))
	for _, entry := range s.sessions {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	out := make([]Update, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.session.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}

func (s *LiveGameService) Get(ctx context.Context, sessionID string) (Update, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Get")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Update{}, err
	}
	return entry.session.Snapshot(), nil
}

func (s *LiveGameService) Whistle(ctx context.Context, sessionID string) (Update, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Whistle")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Update{}, err
	}
	return entry.session.StartWhistle()
}

func (s *LiveGameService) TogglePause(ctx context.Context, sessionID string) (Update, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.TogglePause")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Update{}, err
	}
	return entry.session.TogglePause()
}

func (s *LiveGameService) SetSpeed(ctx context.Context, sessionID string, speed int) (Update, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.SetSpeed")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Update{}, err
	}
	return entry.session.SetSpeed(speed)
}

func (s *LiveGameService) Confirm(ctx context.Context, sessionID string) (Update, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Confirm")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Update{}, err
	}
	return entry.session.ConfirmSubstitution()
}

func (s *LiveGameService) Injure(ctx context.Context, sessionID, playerID string) (Update, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Injure")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Update{}, err
	}
	return entry.session.MarkInjured(playerID)
}

func (s *LiveGameService) Recover(ctx context.Context, sessionID, playerID string) (Update, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Recover")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return Update{}, err
	}
	return entry.session.MarkRecovered(playerID)
}

// Subscribe streams every update of the session until cancel is called or
// the session ends, at which point the channel is closed.
func (s *LiveGameService) Subscribe(sessionID string) (<-chan Update, func(), error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := entry.hub.subscribe()
	return ch, cancel, nil
}

// Finish credits season minutes once and drops the session. A second call
// for the same session reports ErrNotFound.
func (s *LiveGameService) Finish(ctx context.Context, sessionID string) (FinishLiveGameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveGameService.Finish")
	defer span.End()

	entry, err := s.lookup(sessionID)
	if err != nil {
		return FinishLiveGameResult{}, err
	}

	snapshot := entry.session.Snapshot()
	if snapshot.Phase != PhaseFinished {
		return FinishLiveGameResult{}, fmt.Errorf("%w: game is still %s", ErrConflict, snapshot.Phase)
	}

	s.mu.Lock()
	if s.sessions[sessionID] != entry {
		s.mu.Unlock()
		return FinishLiveGameResult{}, fmt.Errorf("%w: live session=%s", ErrNotFound, sessionID)
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	entry.stop()
	entry.hub.close()

	result := FinishLiveGameResult{
		SessionID: sessionID,
		TeamID:    entry.teamID,
		GameID:    entry.gameID,
		Credited:  map[string]int{},
		Report:    lineup.BuildReport(snapshot.State),
	}
	if snapshot.State.Status == lineup.StatusForfeit {
		s.logger.InfoContext(ctx, "live session forfeited, nothing credited", "session_id", sessionID)
		return result, nil
	}

	credit, err := lineup.MinutesToCredit(snapshot.State)
	if err != nil {
		return FinishLiveGameResult{}, fmt.Errorf("%w: %v", ErrConflict, err)
	}

	uncredited, err := s.creditSeasonMinutes(ctx, entry.teamID, credit)
	result.Credited, result.Uncredited = splitCredit(credit, uncredited)
	if err != nil {
		s.logger.ErrorContext(ctx, "credit season minutes failed",
			"session_id", sessionID,
			"uncredited_players", len(uncredited),
			"error", err,
		)
		return result, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "live session finished",
		"session_id", sessionID,
		"team_id", entry.teamID,
		"credited_players", len(credit),
	)
	return result, nil
}

// CreditSeasonMinutes adds minutes to players' season totals outside a live
// session. It is how a coach replays the uncredited part of a finish.
func (s *LiveGameService) CreditSeasonMinutes(ctx context.Context, input CreditSeasonMinutesInput) (CreditSeasonMinutesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveGameService.CreditSeasonMinutes")
	defer span.End()

	teamID := strings.TrimSpace(input.TeamID)
	if len(input.Minutes) == 0 {
		return CreditSeasonMinutesResult{}, fmt.Errorf("%w: no minutes to credit", ErrInvalidInput)
	}
	for playerID, minutes := range input.Minutes {
		if strings.TrimSpace(playerID) == "" || minutes < 0 {
			return CreditSeasonMinutesResult{}, fmt.Errorf("%w: invalid credit player=%q minutes=%d", ErrInvalidInput, playerID, minutes)
		}
	}
	if _, err := loadTeam(ctx, s.teamRepo, teamID); err != nil {
		return CreditSeasonMinutesResult{}, err
	}

	uncredited, err := s.creditSeasonMinutes(ctx, teamID, input.Minutes)
	result := CreditSeasonMinutesResult{TeamID: teamID}
	result.Credited, result.Uncredited = splitCredit(input.Minutes, uncredited)
	if err != nil {
		s.logger.ErrorContext(ctx, "credit season minutes failed", "team_id", teamID, "uncredited_players", len(uncredited), "error", err)
		return result, fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}
	return result, nil
}

// creditSeasonMinutes stores credit through the worker pool and returns the
// entries that were not stored.
func (s *LiveGameService) creditSeasonMinutes(ctx context.Context, teamID string, credit map[string]int) (map[string]int, error) {
	uncredited := make(map[string]int)

	pool, err := ants.NewPool(s.cfg.WorkerPoolSize)
	if err != nil {
		for playerID, minutes := range credit {
			if minutes != 0 {
				uncredited[playerID] = minutes
			}
		}
		return uncredited, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		failMu   sync.Mutex
		failures error
		credited atomic.Int32
	)
	recordFailure := func(playerID string, minutes int, err error) {
		failMu.Lock()
		uncredited[playerID] = minutes
		failures = crerr.CombineErrors(failures, err)
		failMu.Unlock()
	}

	for playerID, minutes := range credit {
		if minutes == 0 {
			continue
		}
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			err := s.breaker.Do(func() error {
				return s.addSeasonMinutes(ctx, teamID, playerID, minutes)
			})
			if err != nil {
				recordFailure(playerID, minutes, crerr.Wrapf(err, "credit player %s", playerID))
				return
			}
			credited.Add(1)
		}); err != nil {
			workers.Done()
			recordFailure(playerID, minutes, crerr.Wrapf(err, "submit credit for player %s", playerID))
		}
	}

	workers.Wait()
	s.logger.DebugContext(ctx, "season minutes credited", "team_id", teamID, "players", credited.Load())
	return uncredited, failures
}

func splitCredit(credit, uncredited map[string]int) (map[string]int, map[string]int) {
	applied := make(map[string]int, len(credit))
	for playerID, minutes := range credit {
		if _, failed := uncredited[playerID]; !failed {
			applied[playerID] = minutes
		}
	}
	if len(uncredited) == 0 {
		return applied, nil
	}
	return applied, uncredited
}

func (s *LiveGameService) addSeasonMinutes(ctx context.Context, teamID, playerID string, minutes int) error {
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return crerr.Wrap(err, "get player by id")
	}
	if !exists || item.TeamID != teamID {
		return crerr.Newf("player %s left team %s", playerID, teamID)
	}

	item.SeasonMinutesPlayed += minutes
	item.UpdatedAt = time.Now().UTC()
	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return crerr.Wrap(err, "upsert player")
	}
	return nil
}

// Shutdown stops every ticker and closes all streams.
func (s *LiveGameService) Shutdown() {
	s.shutdown()
	s.tickers.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		entry.hub.close()
		delete(s.sessions, id)
	}
}

func (s *LiveGameService) lookup(sessionID string) (*liveEntry, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: live session=%s", ErrNotFound, sessionID)
	}
	return entry, nil
}

func explicitAvailability(roster []player.Player, ids []string) (map[string]bool, error) {
	known := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		known[p.ID] = struct{}{}
	}

	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: player %s is not on the roster", ErrInvalidInput, id)
		}
		out[id] = true
	}
	return out, nil
}
