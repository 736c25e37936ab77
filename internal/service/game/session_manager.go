package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
	"github.com/iamasit07/connect4-vs-ai/internal/service/bot"
	"github.com/iamasit07/connect4-vs-ai/pkg/uid"
)

const ErrSessionNotFound domain.Error = "session not found"

// PlayerFactory builds the computer opponent for a difficulty.
type PlayerFactory func(difficulty string) bot.Player

type Defaults struct {
	Columns    int
	Rows       int
	WinLength  int
	Difficulty string
}

type SessionOptions struct {
	ClientID   string
	Columns    int
	Rows       int
	Difficulty string
}

// GameSession wraps one Controller. The mutex serializes requests coming in
// from HTTP and websocket handlers; the controller itself never yields.
type GameSession struct {
	ID           string
	ClientID     string
	Difficulty   string
	CreatedAt    time.Time
	LastActivity time.Time
	controller   *Controller
	store        TallyStore
	mu           sync.Mutex
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions  map[string]*GameSession
	mu        sync.RWMutex
	store     TallyStore
	newPlayer PlayerFactory
	defaults  Defaults

	hooksMu  sync.RWMutex
	onRemove []func(id string)
}

func NewSessionManager(store TallyStore, newPlayer PlayerFactory, defaults Defaults) *SessionManager {
	if store == nil {
		store = NewMemoryTallyStore()
	}
	return &SessionManager{
		sessions:  make(map[string]*GameSession),
		store:     store,
		newPlayer: newPlayer,
		defaults:  defaults,
	}
}

func (sm *SessionManager) CreateSession(ctx context.Context, opts SessionOptions) (*GameSession, error) {
	columns, rows := opts.Columns, opts.Rows
	if columns == 0 {
		columns = sm.defaults.Columns
	}
	if rows == 0 {
		rows = sm.defaults.Rows
	}
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = sm.defaults.Difficulty
	}

	controller, err := NewController(columns, rows, sm.defaults.WinLength, sm.newPlayer(difficulty))
	if err != nil {
		return nil, err
	}

	id := uid.GenerateSessionID()
	clientID := opts.ClientID
	if clientID == "" {
		clientID = id
	}

	tally, err := sm.store.GetTally(ctx, clientID)
	if err != nil {
		log.Warn().Err(err).Str("client", clientID).Msg("could not load tally, starting from zero")
	} else {
		controller.SetTally(tally)
	}

	now := time.Now()
	gs := &GameSession{
		ID:           id,
		ClientID:     clientID,
		Difficulty:   difficulty,
		CreatedAt:    now,
		LastActivity: now,
		controller:   controller,
		store:        sm.store,
	}

	sm.mu.Lock()
	sm.sessions[id] = gs
	sm.mu.Unlock()

	log.Info().Str("session", id).Str("difficulty", difficulty).Msgf("created %dx%d game", columns, rows)
	return gs, nil
}

func (sm *SessionManager) GetSession(id string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	gs, exists := sm.sessions[id]
	return gs, exists
}

// OnRemove registers fn to run after a session leaves the manager, whether
// removed explicitly or reaped as idle.
func (sm *SessionManager) OnRemove(fn func(id string)) {
	sm.hooksMu.Lock()
	defer sm.hooksMu.Unlock()
	sm.onRemove = append(sm.onRemove, fn)
}

func (sm *SessionManager) notifyRemoved(ids ...string) {
	sm.hooksMu.RLock()
	hooks := append([]func(string){}, sm.onRemove...)
	sm.hooksMu.RUnlock()

	for _, id := range ids {
		for _, fn := range hooks {
			fn(id)
		}
	}
}

func (sm *SessionManager) RemoveSession(id string) error {
	sm.mu.Lock()
	if _, exists := sm.sessions[id]; !exists {
		sm.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	sm.mu.Unlock()

	log.Info().Str("session", id).Msg("removed session")
	sm.notifyRemoved(id)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupIdle drops sessions untouched for longer than maxIdle and reports how many went.
// A session busy with a move is in use, so it is skipped rather than waited on.
func (sm *SessionManager) CleanupIdle(maxIdle time.Duration) int {
	sm.mu.RLock()
	candidates := make([]*GameSession, 0, len(sm.sessions))
	for _, gs := range sm.sessions {
		candidates = append(candidates, gs)
	}
	sm.mu.RUnlock()

	now := time.Now()
	var stale []*GameSession
	for _, gs := range candidates {
		if !gs.mu.TryLock() {
			continue
		}
		idle := now.Sub(gs.LastActivity)
		gs.mu.Unlock()

		if idle > maxIdle {
			stale = append(stale, gs)
		}
	}
	if len(stale) == 0 {
		return 0
	}

	removed := make([]string, 0, len(stale))
	sm.mu.Lock()
	for _, gs := range stale {
		// the id may have been removed, or reused, since the scan
		if sm.sessions[gs.ID] == gs {
			delete(sm.sessions, gs.ID)
			removed = append(removed, gs.ID)
		}
	}
	sm.mu.Unlock()

	if len(removed) > 0 {
		log.Info().Msgf("memory cleanup: removed %d idle game sessions", len(removed))
		sm.notifyRemoved(removed...)
	}
	return len(removed)
}

// Play applies a human move and, when it finishes the game, persists the tally.
func (gs *GameSession) Play(ctx context.Context, column int) (MoveReport, Snapshot, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.playLocked(ctx, func() (MoveReport, error) { return gs.controller.Play(column) })
}

func (gs *GameSession) Drop(ctx context.Context) (MoveReport, Snapshot, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.playLocked(ctx, gs.controller.DropAtCursor)
}

func (gs *GameSession) playLocked(ctx context.Context, move func() (MoveReport, error)) (MoveReport, Snapshot, error) {
	gs.LastActivity = time.Now()

	report, err := move()
	if err != nil {
		return report, gs.controller.Snapshot(), err
	}

	if report.Outcome.IsTerminal() {
		log.Info().Str("session", gs.ID).Str("outcome", report.Outcome.String()).Msg("game finished")
		tally, err := gs.store.RecordOutcome(ctx, gs.ClientID, report.Outcome)
		if err != nil {
			log.Warn().Err(err).Str("session", gs.ID).Msg("failed to record outcome")
		} else {
			// picks up games other sessions of this client finished meanwhile
			gs.controller.SetTally(tally)
		}
	}
	return report, gs.controller.Snapshot(), nil
}

func (gs *GameSession) MoveCursor(delta int) Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.LastActivity = time.Now()
	gs.controller.MoveCursor(delta)
	return gs.controller.Snapshot()
}

func (gs *GameSession) Reset() (Snapshot, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.LastActivity = time.Now()
	if err := gs.controller.Reset(); err != nil {
		return Snapshot{}, fmt.Errorf("reset session %s: %w", gs.ID, err)
	}
	log.Info().Str("session", gs.ID).Msg("starting new game")
	return gs.controller.Snapshot(), nil
}

func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.controller.Snapshot()
}
