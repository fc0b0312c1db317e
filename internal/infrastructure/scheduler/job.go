package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks a job through its lifecycle
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobType identifies a maintenance job
type JobType string

const (
	JobTypeGuestStatusRefresh JobType = "GUEST_STATUS_REFRESH"
	JobTypeVisitAutoSignOut   JobType = "VISIT_AUTO_SIGNOUT"
	JobTypeReciprocalExpiry   JobType = "RECIPROCAL_EXPIRY"
	JobTypeDeliveryPoll       JobType = "SMS_DELIVERY_POLL"
	JobTypeTaskReminder       JobType = "TASK_OVERDUE_REMINDER"
)

// NightlyJobTypes returns the jobs that run once per night, in order.
// Auto sign-out runs first so the status refresh sees closed visits.
func NightlyJobTypes() []JobType {
	return []JobType{
		JobTypeVisitAutoSignOut,
		JobTypeGuestStatusRefresh,
		JobTypeReciprocalExpiry,
	}
}

// Job is one maintenance run. AsOf is the reference time the job computes
// against, which for retries stays the originally scheduled time.
type Job struct {
	ID          uuid.UUID
	Type        JobType
	AsOf        time.Time
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
	NextRetryAt *time.Time
}

// NewJob builds a pending job
func NewJob(jobType JobType, asOf time.Time, maxRetries int) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       jobType,
		AsOf:       asOf,
		Status:     JobStatusPending,
		MaxRetries: maxRetries,
	}
}

// Start marks the job running and clears any error from a prior attempt
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job successful
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Fail records the failure reason
func (j *Job) Fail(reason string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = reason
}

// ShouldRetry reports whether a failed job still has attempts left
func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry moves the job back to pending with a delay before the
// next attempt
func (j *Job) ScheduleRetry(delay time.Duration) {
	next := time.Now().Add(delay)
	j.RetryCount++
	j.Status = JobStatusPending
	j.NextRetryAt = &next
	j.Error = ""
}
