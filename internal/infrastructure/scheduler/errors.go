package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning means SubmitJob was called before Start or
	// after Stop
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrJobQueueFull means the bounded queue rejected a job
	ErrJobQueueFull = errors.New("job queue is full")

	// ErrInvalidJobType means a manual trigger named an unknown job
	ErrInvalidJobType = errors.New("invalid job type")
)
