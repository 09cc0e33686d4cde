package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/utils/errutil"
	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

// SessionExpiryWorker removes sessions that have been idle longer than the
// TTL.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - The in-memory store is the only session store, so an expired session is
//   gone for good
type SessionExpiryWorker struct {
	repo     interfaces.Repository
	ttl      time.Duration
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionExpiryWorker creates a worker that sweeps idle sessions every
// interval
func NewSessionExpiryWorker(repo interfaces.Repository, ttl, interval time.Duration) *SessionExpiryWorker {
	return &SessionExpiryWorker{
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop. Does not block server startup.
func (w *SessionExpiryWorker) Start(ctx context.Context) error {
	logging.Default().Info("session expiry worker starting",
		"ttl", w.ttl.String(),
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SessionExpiryWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("session expiry worker stopped")
}

func (w *SessionExpiryWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.SweepOnce(ctx); err != nil {
				// Keep the worker running, next tick retries
				_ = errutil.Handle(ctx, err, "session sweep failed")
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("session expiry worker context cancelled")
			return
		}
	}
}

// SweepOnce performs a single expiry sweep
func (w *SessionExpiryWorker) SweepOnce(ctx context.Context) error {
	deadline := time.Now().UTC().Add(-w.ttl)

	removed, err := w.repo.Session().DeleteExpired(ctx, deadline)
	if err != nil {
		return goerr.Wrap(err, "failed to delete expired sessions")
	}
	if removed > 0 {
		logging.Default().Info("expired sessions removed", "count", removed)
	}
	return nil
}
