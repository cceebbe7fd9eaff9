package transcripts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edenhq/meeting-api/internal/models"
)

// ErrTranscriptNotFound is returned when no transcript matches the lookup.
var ErrTranscriptNotFound = errors.New("transcript not found")

type repository struct {
	db *gorm.DB
}

var _ Repository = (*repository)(nil)

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTranscript(ctx context.Context, transcript *models.Transcript) error {
	if err := r.db.WithContext(ctx).Create(transcript).Error; err != nil {
		return fmt.Errorf("creating transcript: %w", err)
	}
	return nil
}

func (r *repository) GetTranscriptByID(ctx context.Context, id uint) (*models.Transcript, error) {
	var transcript models.Transcript
	if err := r.db.WithContext(ctx).First(&transcript, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("getting transcript: %w", err)
	}
	return &transcript, nil
}

func (r *repository) GetTranscriptsByAudioFile(ctx context.Context, audioFileID uint) ([]*models.Transcript, error) {
	var transcripts []*models.Transcript
	if err := r.db.WithContext(ctx).
		Where("audio_file_id = ?", audioFileID).
		Order("created_at ASC").
		Find(&transcripts).Error; err != nil {
		return nil, fmt.Errorf("getting transcripts by audio file: %w", err)
	}
	return transcripts, nil
}

func (r *repository) DeleteTranscript(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().
		Where("transcript_id = ?", id).
		Delete(&models.TranslatedTranscript{}).Error; err != nil {
		return fmt.Errorf("deleting translations: %w", err)
	}
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Transcript{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting transcript: %w", result.Error)
	}
	return nil
}

func (r *repository) CreateTranslation(ctx context.Context, translation *models.TranslatedTranscript) error {
	if err := r.db.WithContext(ctx).Create(translation).Error; err != nil {
		return fmt.Errorf("creating translation: %w", err)
	}
	return nil
}

func (r *repository) GetTranslationsByTranscript(ctx context.Context, transcriptID uint) ([]*models.TranslatedTranscript, error) {
	var translations []*models.TranslatedTranscript
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at ASC").
		Find(&translations).Error; err != nil {
		return nil, fmt.Errorf("getting translations: %w", err)
	}
	return translations, nil
}
