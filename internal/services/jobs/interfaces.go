package jobs

import (
	"context"
	"time"

	"github.com/edenhq/meeting-api/internal/models"
)

// Service defines the business logic interface for job operations. It is the
// dispatch surface the trigger layer (HTTP handlers) and the pipeline fan-out
// use; enqueue calls are fire-and-forget.
type Service interface {
	// Enqueue operations
	EnqueueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, opts ...JobOption) (*models.Job, error)
	EnqueueUniqueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, uniqueKey string, opts ...JobOption) (*models.Job, error)

	// Status and retrieval
	GetJob(ctx context.Context, jobID uint) (*models.Job, error)
	GetJobStatus(ctx context.Context, jobID uint) (models.JobStatus, error)

	// Worker operations (used by worker pool)
	ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID uint, progress int) error
	CompleteJob(ctx context.Context, jobID uint, result models.JobResult) error
	FailJob(ctx context.Context, jobID uint, errorType models.JobErrorType, err error) error
	DropJob(ctx context.Context, jobID uint, reason string) error
	ReleaseJob(ctx context.Context, jobID uint) error

	// Maintenance
	RetryFailedJob(ctx context.Context, jobID uint) (*models.Job, error)
	CleanupOldJobs(ctx context.Context, retentionDays int) (int64, error)
}

// JobOption is a functional option for configuring jobs
type JobOption func(*jobConfig)

// jobConfig holds configuration for a job
type jobConfig struct {
	Priority    int
	MaxRetries  int
	RetryDelay  time.Duration
	ScheduledAt *time.Time
	CreatedBy   string
}

// WithPriority sets the priority of a job (higher = more priority)
func WithPriority(priority int) JobOption {
	return func(cfg *jobConfig) {
		cfg.Priority = priority
	}
}

// WithMaxRetries sets the maximum number of retries for a job
func WithMaxRetries(retries int) JobOption {
	return func(cfg *jobConfig) {
		cfg.MaxRetries = retries
	}
}

// WithRetryDelay sets the fixed backoff between attempts
func WithRetryDelay(delay time.Duration) JobOption {
	return func(cfg *jobConfig) {
		cfg.RetryDelay = delay
	}
}

// WithDelay defers dispatch by the given duration from now
func WithDelay(delay time.Duration) JobOption {
	return func(cfg *jobConfig) {
		if delay <= 0 {
			return
		}
		at := time.Now().Add(delay)
		cfg.ScheduledAt = &at
	}
}

// WithScheduledAt defers dispatch until the given time
func WithScheduledAt(at time.Time) JobOption {
	return func(cfg *jobConfig) {
		cfg.ScheduledAt = &at
	}
}

// WithCreatedBy sets who created the job
func WithCreatedBy(createdBy string) JobOption {
	return func(cfg *jobConfig) {
		cfg.CreatedBy = createdBy
	}
}
