package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/efreitasn/minimarket/internal/domain"
)

// PastDueRounds lists rounds whose end time has passed and that have
// not been concluded yet.
type PastDueRounds interface {
	PastDue(now time.Time) []*domain.Round
}

// Watcher periodically looks for rounds past their end time and
// settles them. Settlement errors are logged and the round is retried
// on the next tick; a failed batch commits nothing, so retrying is
// safe.
type Watcher struct {
	interval time.Duration
	rounds   PastDueRounds
	settler  *Settler
	logger   *slog.Logger
}

// NewWatcher creates a Watcher with the given dependencies.
func NewWatcher(interval time.Duration, rounds PastDueRounds, settler *Settler, logger *slog.Logger) *Watcher {
	return &Watcher{
		interval: interval,
		rounds:   rounds,
		settler:  settler,
		logger:   logger,
	}
}

// Start launches a background goroutine that ticks at the configured
// interval and settles due rounds. It stops when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				w.tick(t)
			}
		}
	}()
}

// tick settles every due round once. One failing round does not stop
// the others from settling.
func (w *Watcher) tick(now time.Time) {
	for _, r := range w.rounds.PastDue(now) {
		matches, err := w.settler.SettleRound(r.RoundID)
		if err != nil {
			w.logger.Error("round settlement failed",
				slog.String("round_id", r.RoundID),
				slog.String("error", err.Error()),
			)
			continue
		}
		w.logger.Info("round settled",
			slog.String("round_id", r.RoundID),
			slog.Int("matches", len(matches)),
		)
	}
}
