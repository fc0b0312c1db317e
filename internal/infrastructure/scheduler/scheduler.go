package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// jobQueueSize bounds how many jobs can wait. The nightly batch plus the
// periodic jobs never come close, so hitting the bound means something is
// stuck.
const jobQueueSize = 100

// JobExecutor runs one maintenance job. Implemented by the maintenance
// application service.
type JobExecutor interface {
	Execute(ctx context.Context, job *Job) error
}

// SchedulerConfig tunes the worker pool
type SchedulerConfig struct {
	Enabled           bool
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
}

// DefaultSchedulerConfig suits a single-club deployment
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:           true,
		MaxConcurrentJobs: 2,
		JobTimeout:        10 * time.Minute,
		RetryAttempts:     3,
		RetryDelay:        5 * time.Minute,
	}
}

// Scheduler runs maintenance jobs on a small worker pool fed by a
// bounded queue
type Scheduler struct {
	config   SchedulerConfig
	executor JobExecutor
	logger   *zap.Logger

	jobs    chan *Job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewScheduler builds a scheduler; nothing runs until Start
func NewScheduler(config SchedulerConfig, executor JobExecutor, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		config:   config,
		executor: executor,
		logger:   logger,
		jobs:     make(chan *Job, jobQueueSize),
	}
}

// Start launches the worker pool. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.work(ctx, i)
	}

	s.logger.Info("Maintenance scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop drains the workers, waiting at most until ctx expires
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	close(s.jobs)

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		s.logger.Info("Maintenance scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Maintenance scheduler stop timed out")
		return ctx.Err()
	}
}

// SubmitJob queues a job. Fails when the scheduler is stopped or the
// queue is full; it never blocks.
func (s *Scheduler) SubmitJob(job *Job) error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}

	if !s.enqueue(job) {
		return ErrJobQueueFull
	}
	s.logger.Debug("Job submitted", jobFields(job)...)
	return nil
}

// ScheduleJob queues one job of the given type with the configured retry
// budget
func (s *Scheduler) ScheduleJob(jobType JobType, asOf time.Time) error {
	return s.SubmitJob(NewJob(jobType, asOf, s.config.RetryAttempts))
}

// ScheduleNightlyRun queues the whole nightly batch in its required order
func (s *Scheduler) ScheduleNightlyRun(asOf time.Time) error {
	for _, jobType := range NightlyJobTypes() {
		if err := s.ScheduleJob(jobType, asOf); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) enqueue(job *Job) bool {
	select {
	case s.jobs <- job:
		return true
	default:
		return false
	}
}

func (s *Scheduler) work(ctx context.Context, workerID int) {
	defer s.wg.Done()
	s.logger.Debug("Worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Worker stopping", zap.Int("worker_id", workerID))
			return
		case job, ok := <-s.jobs:
			if !ok {
				return
			}
			s.run(ctx, job, workerID)
		}
	}
}

// run executes one job, requeueing it when a retry is due
func (s *Scheduler) run(ctx context.Context, job *Job, workerID int) {
	// A retry that is not due yet goes back to the queue; the workers
	// will pick it up again
	if job.NextRetryAt != nil && time.Now().Before(*job.NextRetryAt) {
		if !s.enqueue(job) {
			s.logger.Warn("Failed to re-queue job for retry", jobFields(job)...)
		}
		return
	}

	job.Start()
	s.logger.Info("Processing job", append(jobFields(job), zap.Int("worker_id", workerID))...)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	if err := s.executor.Execute(jobCtx, job); err != nil {
		s.fail(job, workerID, err)
		return
	}

	job.Complete()
	s.logger.Info("Job completed successfully",
		append(jobFields(job), zap.Int("worker_id", workerID))...)
}

func (s *Scheduler) fail(job *Job, workerID int, err error) {
	job.Fail(err.Error())
	s.logger.Error("Job failed",
		append(jobFields(job), zap.Int("worker_id", workerID), zap.Error(err))...)

	if !job.ShouldRetry() {
		return
	}

	job.ScheduleRetry(s.config.RetryDelay)
	s.logger.Info("Job scheduled for retry",
		append(jobFields(job),
			zap.Int("retry_count", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries))...)
	if !s.enqueue(job) {
		s.logger.Warn("Failed to re-queue job for retry", jobFields(job)...)
	}
}

func jobFields(job *Job) []zap.Field {
	return []zap.Field{
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
	}
}
