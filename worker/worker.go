package worker

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
)

// Worker long-running worker
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a work func on a fixed tick until the context is
// cancelled. A failing tick is logged and retried on the next one.
type TickWorker struct {
	Delay time.Duration
}

// StartTick start tick
func (w *TickWorker) StartTick(ctx context.Context, onWork func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = 5 * time.Second
	}

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := onWork(ctx); err != nil {
				logger.FromContext(ctx).WithError(err).Debugln("tick failed")
			}
		}
	}
}
