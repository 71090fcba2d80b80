package rentalsvc

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper runs the daily late-rental sweep at local midnight.
type Sweeper struct {
	svc Service
	log *slog.Logger
}

func NewSweeper(svc Service, log *slog.Logger) *Sweeper {
	return &Sweeper{svc: svc, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	for {
		wait := untilNextMidnight(time.Now())
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		n, err := s.svc.MarkRentalsLate(ctx)
		if err != nil {
			s.log.Error("late sweep failed", "err", err)
			continue
		}
		s.log.Info("late sweep done", "marked", n)
	}
}

func untilNextMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
