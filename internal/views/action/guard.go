// Package action holds the in-flight guard every view action runs under.
package action

import (
	"context"
	"sync/atomic"
	"time"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/metrics"
)

// Guard admits one outstanding call of an action at a time. A call made while another is outstanding
// fails with ACTION_IN_FLIGHT; it is neither queued nor retried.
type Guard struct {
	name   string
	busy   atomic.Bool
	logger logger.Logger
}

func NewGuard(name string, log logger.Logger) *Guard {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Guard{name: name, logger: log}
}

// Name is the action label used in logs and metrics.
func (g *Guard) Name() string { return g.name }

// Busy reports whether a call is outstanding.
func (g *Guard) Busy() bool { return g.busy.Load() }

// Run calls fn unless a call is already outstanding.
func (g *Guard) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if !g.busy.CompareAndSwap(false, true) {
		g.logger.Warn("Action already in progress", map[string]interface{}{
			"action": g.name,
		})
		metrics.ActionsFailed.WithLabelValues(g.name, string(errors.ErrCodeActionInFlight)).Inc()
		return errors.NewActionInFlightError(g.name)
	}
	defer g.busy.Store(false)

	metrics.ActionsInFlight.WithLabelValues(g.name).Inc()
	defer metrics.ActionsInFlight.WithLabelValues(g.name).Dec()

	start := time.Now()
	err := fn(ctx)
	if err != nil {
		metrics.ActionsFailed.WithLabelValues(g.name, string(errors.Normalize(err).Code)).Inc()
		return err
	}

	g.logger.Debug("Action completed", map[string]interface{}{
		"action":   g.name,
		"duration": time.Since(start).String(),
	})
	return nil
}
