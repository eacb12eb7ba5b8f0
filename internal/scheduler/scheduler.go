package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 6 * time.Hour

// RefreshFunc adapts a plain function to the job the scheduler runs.
type RefreshFunc func(ctx context.Context) error

// Scheduler periodically refreshes the cached dataset.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresh   RefreshFunc
	interval  time.Duration
	timeout   time.Duration
	immediate bool
}

// New creates a new Scheduler. When immediate is true the first refresh runs
// as soon as the scheduler starts, otherwise after one interval.
func New(interval, timeout time.Duration, immediate bool, refresh RefreshFunc) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		scheduler: s,
		refresh:   refresh,
		interval:  interval,
		timeout:   timeout,
		immediate: immediate,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.refresh == nil {
		log.Println("scheduler: no refresh job configured; nothing to schedule")
		return nil
	}

	job := s.scheduler.Every(s.interval)
	if !s.immediate {
		job = job.WaitForSchedule()
	}

	_, err := job.SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running dataset refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.refresh(ctx); err != nil {
		log.Printf("scheduler: dataset refresh failed: %v", err)
		return
	}
	log.Println("scheduler: completed dataset refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
