package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// JobStatus represents the status of a job in the queue
type JobStatus string

const (
	JobStatusPending           JobStatus = "pending"
	JobStatusProcessing        JobStatus = "processing"
	JobStatusCompleted         JobStatus = "completed"
	JobStatusFailed            JobStatus = "failed"
	JobStatusPermanentlyFailed JobStatus = "permanently_failed"
	JobStatusCancelled         JobStatus = "cancelled"
)

// JobType represents one retryable pipeline stage
type JobType string

const (
	JobTypeTranscription JobType = "transcription"
	JobTypeTranslation   JobType = "translation"
	JobTypeSummarization JobType = "summarization"
	JobTypeExtraction    JobType = "extraction"
	JobTypeDelivery      JobType = "delivery"
	JobTypeListenerJoin  JobType = "listener_join"
	JobTypeUserDeletion  JobType = "user_deletion"
)

// AllJobTypes lists every job type the worker pool can dispatch
var AllJobTypes = []JobType{
	JobTypeTranscription,
	JobTypeTranslation,
	JobTypeSummarization,
	JobTypeExtraction,
	JobTypeDelivery,
	JobTypeListenerJoin,
	JobTypeUserDeletion,
}

// JobErrorType classifies a stage failure for retry decisions
type JobErrorType string

const (
	ErrorTypeTransient JobErrorType = "transient" // network/storage/external service
	ErrorTypeNotFound  JobErrorType = "not_found" // referenced entity deleted; drop without retry
	ErrorTypeFatal     JobErrorType = "fatal"     // permanent configuration error
)

// Job represents a durable background job in the queue
type Job struct {
	gorm.Model
	Type       JobType    `json:"type" gorm:"not null;index:idx_jobs_type_status"`
	Status     JobStatus  `json:"status" gorm:"default:'pending';index:idx_jobs_status_priority"`
	Payload    JobPayload `json:"payload" gorm:"type:json"`
	Priority   int        `json:"priority" gorm:"default:0;index:idx_jobs_status_priority"`
	MaxRetries int        `json:"max_retries"`
	RetryCount int        `json:"retry_count" gorm:"default:0"`
	Progress   int        `json:"progress" gorm:"default:0"` // 0-100

	// RetryDelaySecs is the fixed backoff between attempts; the claim query
	// will not hand out a failed job before the delay has elapsed.
	// Zero means no backoff; the enqueue path always sets it explicitly.
	RetryDelaySecs int `json:"retry_delay_secs"`

	// ScheduledAt defers dispatch; a pending job is invisible to workers
	// until this time has passed. Nil means immediately dispatchable.
	ScheduledAt *time.Time `json:"scheduled_at" gorm:"index"`

	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastFailedAt *time.Time `json:"last_failed_at"`
	Error        string     `json:"error,omitempty"`
	ErrorType    string     `json:"error_type,omitempty"`
	Result       JobResult  `json:"result,omitempty" gorm:"type:json"`
	WorkerID     string     `json:"worker_id,omitempty"`
	CreatedBy    string     `json:"created_by,omitempty"`
}

// JobPayload represents the input data for a job
type JobPayload map[string]interface{}

// Value implements driver.Valuer interface for JobPayload
func (p JobPayload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for JobPayload
func (p *JobPayload) Scan(value interface{}) error {
	if value == nil {
		*p = make(JobPayload)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, p)
}

// JobResult represents the output data from a completed job
type JobResult map[string]interface{}

// Value implements driver.Valuer interface for JobResult
func (r JobResult) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner interface for JobResult
func (r *JobResult) Scan(value interface{}) error {
	if value == nil {
		*r = make(JobResult)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, r)
}

// IsRetryable returns true if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// IsTerminal returns true if the job is in a terminal state
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted ||
		j.Status == JobStatusCancelled ||
		j.Status == JobStatusPermanentlyFailed ||
		(j.Status == JobStatusFailed && !j.IsRetryable())
}

// GetPayloadString safely retrieves a string value from the payload
func (j *Job) GetPayloadString(key string) (string, bool) {
	if j.Payload == nil {
		return "", false
	}
	val, ok := j.Payload[key]
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetPayloadUint safely retrieves an entity id from the payload.
// JSON numbers decode as float64, so several numeric types are accepted.
func (j *Job) GetPayloadUint(key string) (uint, bool) {
	if j.Payload == nil {
		return 0, false
	}
	val, ok := j.Payload[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return uint(v), true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case uint:
		return v, true
	default:
		return 0, false
	}
}

// GetPayloadBool safely retrieves a bool value from the payload
func (j *Job) GetPayloadBool(key string) (bool, bool) {
	if j.Payload == nil {
		return false, false
	}
	val, ok := j.Payload[key]
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// SetResult sets a result value
func (j *Job) SetResult(key string, value interface{}) {
	if j.Result == nil {
		j.Result = make(JobResult)
	}
	j.Result[key] = value
}

// TableName specifies the table name for GORM
func (Job) TableName() string {
	return "jobs"
}
