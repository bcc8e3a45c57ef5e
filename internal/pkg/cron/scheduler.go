package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a periodically executed task. Interval is how often the job is
// polled; the job itself decides whether the period boundary was crossed.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs registered jobs on their intervals until stopped.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for them to finish.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.executeJob(job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(job)
		}
	}
}

func (s *Scheduler) executeJob(job Job) {
	start := time.Now()

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs every registered job a single time on the caller's context.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}

// PeriodGuard wraps a job function so it only fires when the period key
// changes between polls, for example once per calendar month. The reset
// operations behind these jobs are idempotent, so a missed or repeated
// firing is harmless.
type PeriodGuard struct {
	key  func(time.Time) string
	last string
	mu   sync.Mutex
}

// NewPeriodGuard seeds the guard with the current period so a process
// restart mid-period does not re-fire the job.
func NewPeriodGuard(key func(time.Time) string) *PeriodGuard {
	return &PeriodGuard{key: key, last: key(time.Now())}
}

func (g *PeriodGuard) Wrap(fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		g.mu.Lock()
		now := g.key(time.Now())
		if now == g.last {
			g.mu.Unlock()
			return nil
		}
		g.last = now
		g.mu.Unlock()
		return fn(ctx)
	}
}

// MonthKey identifies a calendar month, for monthly jobs.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// YearKey identifies a calendar year, for annual jobs.
func YearKey(t time.Time) string {
	return t.Format("2006")
}
