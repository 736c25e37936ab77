package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-vs-ai/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	MaxIdle        time.Duration
	Interval       time.Duration
}

func NewWorker(sm *game.SessionManager, maxIdle time.Duration) *Worker {
	interval := maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Worker{SessionManager: sm, MaxIdle: maxIdle, Interval: interval}
}

// Start runs the cleanup on a ticker until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	log.Info().Msgf("[CLEANUP] background worker started, sweeping every %s", w.Interval)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("[CLEANUP] background worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce executes a single sweep.
func (w *Worker) RunOnce() int {
	return w.SessionManager.CleanupIdle(w.MaxIdle)
}
