package holds

import (
	"context"
	"time"

	"github.com/ParthG2209/Schedlyx/pkg/logger"
)

// JobProcessor runs the background expiry sweep. The sweep is a safety net
// behind the inline checks; holds are treated as expired by reads and the
// capacity sums regardless of whether it has run.
type JobProcessor struct {
	service Service
	log     *logger.Logger

	sweepInterval time.Duration
	done          chan struct{}
}

func NewJobProcessor(service Service, sweepInterval time.Duration, log *logger.Logger) *JobProcessor {
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Second
	}
	return &JobProcessor{
		service:       service,
		log:           log,
		sweepInterval: sweepInterval,
		done:          make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately.
func (jp *JobProcessor) Start(ctx context.Context) {
	go jp.runSweeper(ctx)
}

func (jp *JobProcessor) Stop() {
	close(jp.done)
}

func (jp *JobProcessor) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(jp.sweepInterval)
	defer ticker.Stop()

	jp.log.Info("hold expiry sweeper started", "interval", jp.sweepInterval.String())

	for {
		select {
		case <-ticker.C:
			jp.sweep(ctx)
		case <-jp.done:
			jp.log.Info("hold expiry sweeper stopped")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) sweep(ctx context.Context) {
	released, err := jp.service.ReleaseExpired(ctx)
	if err != nil {
		jp.log.ErrorWithContext(ctx, "hold expiry sweep failed", err, nil)
		return
	}
	if released > 0 {
		jp.log.LogHoldsSwept(ctx, released)
	}
}
