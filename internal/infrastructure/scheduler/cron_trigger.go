package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CronTriggerConfig holds configuration for the cron trigger
type CronTriggerConfig struct {
	// NightlyRunHour/Minute is the club-local time for the nightly batch
	// (auto sign-out, guest status refresh, reciprocal expiry)
	NightlyRunHour   int
	NightlyRunMinute int

	// CheckInterval is how often to check if the nightly run is due
	CheckInterval time.Duration

	// DeliveryPollPeriod is how often to poll SMS delivery reports
	DeliveryPollPeriod time.Duration

	// ReminderPeriod is how often to scan for overdue task reminders
	ReminderPeriod time.Duration
}

// DefaultCronTriggerConfig returns default cron trigger configuration
func DefaultCronTriggerConfig() CronTriggerConfig {
	return CronTriggerConfig{
		NightlyRunHour:     2, // 2am
		NightlyRunMinute:   0,
		CheckInterval:      time.Minute,
		DeliveryPollPeriod: 5 * time.Minute,
		ReminderPeriod:     time.Hour,
	}
}

// CronTrigger drives the periodic maintenance jobs
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string // Track which date the nightly batch last ran for
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(config CronTriggerConfig, scheduler *Scheduler, logger *zap.Logger) *CronTrigger {
	return &CronTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Int("nightly_hour", c.config.NightlyRunHour),
		zap.Int("nightly_minute", c.config.NightlyRunMinute),
		zap.Duration("delivery_poll_period", c.config.DeliveryPollPeriod),
		zap.Duration("reminder_period", c.config.ReminderPeriod),
	)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop fires the nightly check and the periodic jobs
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	nightly := time.NewTicker(c.config.CheckInterval)
	defer nightly.Stop()

	deliveryPoll := time.NewTicker(c.config.DeliveryPollPeriod)
	defer deliveryPoll.Stop()

	reminders := time.NewTicker(c.config.ReminderPeriod)
	defer reminders.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-nightly.C:
			c.checkAndTriggerNightly()
		case <-deliveryPoll.C:
			c.submit(JobTypeDeliveryPoll)
		case <-reminders.C:
			c.submit(JobTypeTaskReminder)
		}
	}
}

// checkAndTriggerNightly triggers the nightly batch once per calendar day
func (c *CronTrigger) checkAndTriggerNightly() {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	// Skip if we already ran today
	c.mu.Lock()
	if c.lastRunDate == currentDate {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// Check if it's the right time
	if now.Hour() != c.config.NightlyRunHour || now.Minute() != c.config.NightlyRunMinute {
		return
	}

	c.mu.Lock()
	c.lastRunDate = currentDate
	c.mu.Unlock()

	c.logger.Info("Triggering nightly maintenance batch")
	if err := c.scheduler.ScheduleNightlyRun(now); err != nil {
		c.logger.Error("Failed to schedule nightly batch", zap.Error(err))
	}
}

// submit queues one periodic job, logging submission failures
func (c *CronTrigger) submit(jobType JobType) {
	if err := c.scheduler.ScheduleJob(jobType, time.Now()); err != nil {
		c.logger.Error("Failed to schedule job",
			zap.String("job_type", string(jobType)),
			zap.Error(err),
		)
	}
}

// TriggerManualRun allows manual triggering of one job type, or the whole
// nightly batch when jobType is nil
func (c *CronTrigger) TriggerManualRun(jobType *JobType, asOf time.Time) error {
	if jobType != nil {
		return c.scheduler.ScheduleJob(*jobType, asOf)
	}
	return c.scheduler.ScheduleNightlyRun(asOf)
}
