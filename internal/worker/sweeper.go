// Package worker holds the background loops started by the serve command.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultMarker moves overdue loans to DEFAULTED and reports how many moved.
type DefaultMarker interface {
	SweepDefaults(ctx context.Context) (int, error)
}

type Sweeper struct {
	marker DefaultMarker
	every  time.Duration
	log    *zap.Logger
}

func NewSweeper(m DefaultMarker, every time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{marker: m, every: every, log: log}
}

// Run sweeps once at start and then on every tick until ctx is done.
// A non-positive interval disables the loop.
func (s *Sweeper) Run(ctx context.Context) error {
	if s.every <= 0 {
		s.log.Info("sweeper: disabled")
		return nil
	}
	t := time.NewTicker(s.every)
	defer t.Stop()

	s.log.Info("sweeper: started", zap.Duration("every", s.every))
	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper: stopped")
			return nil
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.marker.SweepDefaults(ctx)
	switch {
	case err != nil && ctx.Err() != nil:
	case err != nil:
		s.log.Error("sweeper: sweep failed", zap.Error(err))
	case n > 0:
		s.log.Info("sweeper: loans defaulted", zap.Int("count", n))
	}
}
