package game

import (
	"context"
	"sync"

	"github.com/iamasit07/connect4-vs-ai/internal/domain"
)

// TallyStore keeps win tallies keyed by client so a reopened session picks up
// where the last one left off. Several sessions may share one key, so a
// finished game is recorded as an increment and the store hands back the
// merged total.
type TallyStore interface {
	GetTally(ctx context.Context, key string) (domain.Tally, error)
	RecordOutcome(ctx context.Context, key string, outcome domain.Outcome) (domain.Tally, error)
}

// MemoryTallyStore is the fallback when Redis is unavailable.
type MemoryTallyStore struct {
	mu      sync.RWMutex
	tallies map[string]domain.Tally
}

func NewMemoryTallyStore() *MemoryTallyStore {
	return &MemoryTallyStore{tallies: make(map[string]domain.Tally)}
}

func (m *MemoryTallyStore) GetTally(_ context.Context, key string) (domain.Tally, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tallies[key], nil
}

func (m *MemoryTallyStore) RecordOutcome(_ context.Context, key string, outcome domain.Outcome) (domain.Tally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tally := m.tallies[key]
	tally.Record(outcome)
	m.tallies[key] = tally
	return tally, nil
}
