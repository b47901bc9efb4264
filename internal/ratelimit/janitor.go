package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const defaultSweepInterval = time.Minute

type Sweeper interface {
	Sweep(now time.Time, length time.Duration) int
}

// Janitor periodically evicts elapsed windows so idle clients do not pin memory.
type Janitor struct {
	sweeper  Sweeper
	clock    clockwork.Clock
	window   time.Duration
	interval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (j *Janitor) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(j.clock))
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.sched = scheduler
	j.mu.Unlock()

	job := func() {
		execID := uuid.NewString()
		removed := j.sweeper.Sweep(j.clock.Now(), j.window)
		if removed > 0 {
			logrus.WithFields(logrus.Fields{"exec_id": execID, "removed": removed}).Debug("Swept expired rate limit windows")
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		if sdErr := j.Shutdown(); sdErr != nil {
			logrus.Errorf("Rate limit janitor shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler once; concurrent and repeated calls wait for it and return nil.
func (j *Janitor) Shutdown() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.sched == nil {
		return nil
	}
	err := j.sched.Shutdown()
	j.sched = nil
	return err
}

func (j *Janitor) running() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.sched != nil
}

func NewJanitor(sweeper Sweeper, clock clockwork.Clock, window, interval time.Duration) *Janitor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Janitor{sweeper: sweeper, clock: clock, window: window, interval: interval}
}
