package recordings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edenhq/meeting-api/internal/models"
)

var (
	ErrRecordingNotFound = errors.New("recording not found")
	ErrAudioFileNotFound = errors.New("audio file not found")
)

type repository struct {
	db *gorm.DB
}

var _ Repository = (*repository)(nil)

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRecording(ctx context.Context, recording *models.Recording) error {
	if recording.Status == "" {
		recording.Status = models.RecordingStatusUploaded
	}
	if err := r.db.WithContext(ctx).Create(recording).Error; err != nil {
		return fmt.Errorf("creating recording: %w", err)
	}
	return nil
}

func (r *repository) GetRecordingByID(ctx context.Context, id uint) (*models.Recording, error) {
	var recording models.Recording
	if err := r.db.WithContext(ctx).First(&recording, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("getting recording: %w", err)
	}
	return &recording, nil
}

func (r *repository) GetRecordingsByMeeting(ctx context.Context, meetingID uint) ([]*models.Recording, error) {
	var recordings []*models.Recording
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&recordings).Error; err != nil {
		return nil, fmt.Errorf("getting recordings by meeting: %w", err)
	}
	return recordings, nil
}

func (r *repository) UpdateRecordingStatus(ctx context.Context, id uint, status models.RecordingStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Recording{}).
		Where("id = ?", id).
		Update("processing_status", status)
	if result.Error != nil {
		return fmt.Errorf("updating recording status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordingNotFound
	}
	return nil
}

func (r *repository) MarkRecordingProcessed(ctx context.Context, id uint, transcriptID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Recording{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": models.RecordingStatusProcessed,
			"processed":         true,
			"transcript_id":     transcriptID,
			"processing_error":  "",
		})
	if result.Error != nil {
		return fmt.Errorf("marking recording processed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordingNotFound
	}
	return nil
}

func (r *repository) MarkRecordingFailed(ctx context.Context, id uint, reason string) error {
	result := r.db.WithContext(ctx).Model(&models.Recording{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": models.RecordingStatusFailed,
			"processing_error":  reason,
		})
	if result.Error != nil {
		return fmt.Errorf("marking recording failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordingNotFound
	}
	return nil
}

func (r *repository) DeleteRecording(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Recording{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting recording: %w", result.Error)
	}
	return nil
}

func (r *repository) EnsureAudioFile(ctx context.Context, file *models.AudioFile) (*models.AudioFile, bool, error) {
	var existing models.AudioFile
	err := r.db.WithContext(ctx).
		Where("storage_key = ?", file.StorageKey).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("looking up audio file: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		// Lost a race with a concurrent upload for the same key; reuse theirs.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if lookupErr := r.db.WithContext(ctx).
				Where("storage_key = ?", file.StorageKey).
				First(&existing).Error; lookupErr == nil {
				return &existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("creating audio file: %w", err)
	}
	return file, true, nil
}

func (r *repository) GetAudioFileByID(ctx context.Context, id uint) (*models.AudioFile, error) {
	var file models.AudioFile
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAudioFileNotFound
		}
		return nil, fmt.Errorf("getting audio file: %w", err)
	}
	return &file, nil
}

func (r *repository) MarkAudioFileProcessed(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.AudioFile{}).
		Where("id = ?", id).
		Update("processed", true)
	if result.Error != nil {
		return fmt.Errorf("marking audio file processed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAudioFileNotFound
	}
	return nil
}
