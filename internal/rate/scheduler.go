package rate

import (
	"context"
	"fxconvert/internal/adapters"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const defaultSyncInterval = time.Hour

// SyncScheduler runs SyncRates on a fixed interval, starting immediately.
type SyncScheduler struct {
	service  *Service
	provider adapters.RateProvider
	bases    []string
	interval time.Duration
	clock    clockwork.Clock
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *SyncScheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(s.clock))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if _, syncErr := SyncRates(jobCtx, execID, s.service, s.provider, s.bases); syncErr != nil {
			logrus.Errorf("Sync rates job %s failed: %v", execID, syncErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Sync scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler once; concurrent and repeated calls wait for it and return nil.
func (s *SyncScheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *SyncScheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewSyncScheduler(service *Service, provider adapters.RateProvider, bases []string, interval time.Duration, clock clockwork.Clock) *SyncScheduler {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SyncScheduler{service: service, provider: provider, bases: bases, interval: interval, clock: clock}
}
