package recordings

import (
	"context"

	"github.com/edenhq/meeting-api/internal/models"
)

// Repository provides access to recordings and their backing audio files.
type Repository interface {
	CreateRecording(ctx context.Context, recording *models.Recording) error
	GetRecordingByID(ctx context.Context, id uint) (*models.Recording, error)
	GetRecordingsByMeeting(ctx context.Context, meetingID uint) ([]*models.Recording, error)
	UpdateRecordingStatus(ctx context.Context, id uint, status models.RecordingStatus) error
	MarkRecordingProcessed(ctx context.Context, id uint, transcriptID uint) error
	MarkRecordingFailed(ctx context.Context, id uint, reason string) error
	DeleteRecording(ctx context.Context, id uint) error

	// EnsureAudioFile returns the audio file for the given storage key,
	// creating it when absent. The storage key is the idempotency key:
	// duplicate upload events for the same key reuse one row.
	EnsureAudioFile(ctx context.Context, file *models.AudioFile) (*models.AudioFile, bool, error)
	GetAudioFileByID(ctx context.Context, id uint) (*models.AudioFile, error)
	MarkAudioFileProcessed(ctx context.Context, id uint) error
}
