// Package watch re-runs an action when project files change.
package watch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/devassist/internal/utils"
)

// DefaultDebounce is the quiet period that must follow the last change before a run starts.
const DefaultDebounce = 500 * time.Millisecond

const runFailedMessage = "watch run failed"

// RunFunc is the action executed after changes settle.
type RunFunc func(ctx context.Context) error

// Scheduler coalesces triggers into debounced runs. At most one run is in
// flight; triggers that arrive during a run schedule exactly one follow-up.
type Scheduler struct {
	debounce time.Duration
	run      RunFunc
	triggers chan struct{}
	logger   *zap.Logger
}

// NewScheduler constructs a Scheduler. A non-positive debounce uses DefaultDebounce.
func NewScheduler(debounce time.Duration, run RunFunc, logger *zap.Logger) *Scheduler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Scheduler{
		debounce: debounce,
		run:      run,
		triggers: make(chan struct{}, 1),
		logger:   utils.LoggerOrNop(logger),
	}
}

// Trigger records a change. It never blocks.
func (scheduler *Scheduler) Trigger() {
	select {
	case scheduler.triggers <- struct{}{}:
	default:
	}
}

// Run processes triggers until ctx is cancelled and returns ctx.Err().
// Run failures are logged and do not stop the loop.
func (scheduler *Scheduler) Run(ctx context.Context) error {
	var debounceTimer *time.Timer
	busy := false
	pending := false
	completed := make(chan error, 1)

	for {
		var debounceChannel <-chan time.Time
		if debounceTimer != nil {
			debounceChannel = debounceTimer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(&debounceTimer)
			if busy {
				<-completed
			}
			return ctx.Err()
		case <-scheduler.triggers:
			if busy {
				pending = true
				continue
			}
			scheduleTimer(&debounceTimer, scheduler.debounce)
		case <-debounceChannel:
			debounceTimer = nil
			busy = true
			go func() {
				completed <- scheduler.run(ctx)
			}()
		case runError := <-completed:
			busy = false
			if runError != nil {
				scheduler.logger.Error(runFailedMessage, zap.Error(runError))
			}
			if pending {
				pending = false
				scheduleTimer(&debounceTimer, scheduler.debounce)
			}
		}
	}
}

func scheduleTimer(timer **time.Timer, interval time.Duration) {
	if *timer == nil {
		*timer = time.NewTimer(interval)
		return
	}
	if !(*timer).Stop() {
		select {
		case <-(*timer).C:
		default:
		}
	}
	(*timer).Reset(interval)
}

func stopTimer(timer **time.Timer) {
	if *timer == nil {
		return
	}
	if !(*timer).Stop() {
		select {
		case <-(*timer).C:
		default:
		}
	}
	*timer = nil
}
