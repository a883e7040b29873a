// Package background runs the site server's housekeeping jobs on a small
// worker pool: sweeping expired editor drafts and seeding default page
// sections once the backend is reachable.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ellavera-site/pkg/logger"
)

type SchedulerConfig struct {
	WorkerCount int
	QueueSize   int
}

type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

type Job struct {
	Name        string
	Run         func(ctx context.Context) error
	Delay       time.Duration
	Timeout     time.Duration
	RetryPolicy RetryPolicy
}

var (
	ErrSchedulerNotStarted   = errors.New("scheduler not started")
	ErrJobAlreadyScheduled   = errors.New("job already scheduled")
	errSchedulerShuttingDown = errors.New("scheduler is shutting down")
)

var (
	jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ellavera_site",
		Subsystem: "background",
		Name:      "job_runs_total",
		Help:      "Total background job executions",
	}, []string{"job", "status"})

	jobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ellavera_site",
		Subsystem: "background",
		Name:      "job_duration_seconds",
		Help:      "Duration of background job executions",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
)

// Scheduler runs jobs on a fixed number of workers. Unique jobs are
// dropped while a job of the same name is queued or running.
type Scheduler struct {
	config SchedulerConfig

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	active  map[string]struct{}

	queue chan scheduledJob

	workers sync.WaitGroup
	running sync.WaitGroup
}

type scheduledJob struct {
	job     Job
	attempt int
	unique  bool
}

func NewScheduler(cfg SchedulerConfig) *Scheduler {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}

	return &Scheduler{
		config: cfg,
		queue:  make(chan scheduledJob, cfg.QueueSize),
		active: make(map[string]struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true

	for i := 0; i < s.config.WorkerCount; i++ {
		s.workers.Add(1)
		go s.worker()
	}
}

func (s *Scheduler) worker() {
	defer s.workers.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.queue:
			s.execute(job)
		}
	}
}

// Schedule queues a job once.
func (s *Scheduler) Schedule(job Job) error {
	return s.schedule(job, false)
}

// ScheduleUnique queues a job unless one with the same name is pending.
func (s *Scheduler) ScheduleUnique(job Job) error {
	return s.schedule(job, true)
}

// Every queues job as unique on every tick of interval until the scheduler
// shuts down. A tick that finds the previous run still pending is skipped.
func (s *Scheduler) Every(job Job, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	ctx := s.ctx
	s.workers.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.workers.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.ScheduleUnique(job); err != nil && !errors.Is(err, ErrJobAlreadyScheduled) {
					if !errors.Is(err, errSchedulerShuttingDown) {
						logger.Warn("Failed to queue periodic job", map[string]interface{}{"job": job.Name, "error": err.Error()})
					}
					return
				}
			}
		}
	}()

	return nil
}

func (s *Scheduler) schedule(job Job, unique bool) error {
	if job.Name == "" {
		return errors.New("job name is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	if unique {
		if _, exists := s.active[job.Name]; exists {
			s.mu.Unlock()
			return ErrJobAlreadyScheduled
		}
		s.active[job.Name] = struct{}{}
	}
	s.mu.Unlock()

	if !s.enqueue(scheduledJob{job: job, attempt: 1, unique: unique}) {
		s.release(job.Name, unique)
		return errSchedulerShuttingDown
	}
	return nil
}

func (s *Scheduler) enqueue(job scheduledJob) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.queue <- job:
		return true
	}
}

func (s *Scheduler) release(name string, unique bool) {
	if !unique {
		return
	}
	s.mu.Lock()
	delete(s.active, name)
	s.mu.Unlock()
}

func (s *Scheduler) execute(job scheduledJob) {
	if job.job.Delay > 0 {
		timer := time.NewTimer(job.job.Delay)
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			timer.Stop()
			s.finish(job, context.Canceled)
			return
		}
	}

	s.running.Add(1)
	defer s.running.Done()

	err := s.run(job)
	if err != nil && s.shouldRetry(job, err) {
		retry := job
		retry.attempt++
		retry.job.Delay = job.job.RetryPolicy.Backoff
		go func() {
			if !s.enqueue(retry) {
				s.finish(retry, err)
			}
		}()
		return
	}

	s.finish(job, err)
}

func (s *Scheduler) run(job scheduledJob) (runErr error) {
	start := time.Now()
	status := "success"

	ctx := s.ctx
	if job.job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.job.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
			status = "failure"
		}
		jobDurationSeconds.WithLabelValues(job.job.Name).Observe(time.Since(start).Seconds())
		jobRunsTotal.WithLabelValues(job.job.Name, status).Inc()
	}()

	if err := ctx.Err(); err != nil {
		status = "canceled"
		return err
	}

	if runErr = job.job.Run(ctx); runErr != nil {
		status = "failure"
		if errors.Is(runErr, context.Canceled) {
			status = "canceled"
		}
	}
	return runErr
}

func (s *Scheduler) shouldRetry(job scheduledJob, err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return job.attempt <= job.job.RetryPolicy.MaxRetries
}

func (s *Scheduler) finish(job scheduledJob, runErr error) {
	s.release(job.job.Name, job.unique)

	fields := map[string]interface{}{"job": job.job.Name, "attempt": job.attempt}
	switch {
	case runErr == nil:
		logger.Debug("Background job completed", fields)
	case errors.Is(runErr, context.Canceled):
		logger.Warn("Background job canceled", fields)
	default:
		logger.Error(runErr, "Background job failed", fields)
	}
}

// Shutdown stops the workers and waits for running jobs until ctx ends.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		s.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports how many unique jobs are queued or running.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
