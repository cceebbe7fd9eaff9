package pipeline

import (
	"errors"

	"github.com/edenhq/meeting-api/internal/models"
)

// stageError tags an error with how the job queue should treat it.
type stageError struct {
	kind models.JobErrorType
	err  error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

// Fatal marks an error as permanent: the job fails immediately with no
// retries. Used for misconfiguration the retry loop cannot fix.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &stageError{kind: models.ErrorTypeFatal, err: err}
}

// NotFound marks an error as a missing-entity race: the job is dropped as
// cancelled rather than retried, since the row it references is gone.
func NotFound(err error) error {
	if err == nil {
		return nil
	}
	return &stageError{kind: models.ErrorTypeNotFound, err: err}
}

// Classify maps a stage error to the queue's error taxonomy. Untagged errors
// are transient and retried.
func Classify(err error) models.JobErrorType {
	var se *stageError
	if errors.As(err, &se) {
		return se.kind
	}
	return models.ErrorTypeTransient
}
