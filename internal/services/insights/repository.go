package insights

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edenhq/meeting-api/internal/models"
)

var (
	ErrSummaryNotFound    = errors.New("summary not found")
	ErrExtractionNotFound = errors.New("extraction not found")
)

type repository struct {
	db *gorm.DB
}

var _ Repository = (*repository)(nil)

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSummary(ctx context.Context, summary *models.Summary) error {
	if err := r.db.WithContext(ctx).Create(summary).Error; err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}
	return nil
}

func (r *repository) GetSummaryByID(ctx context.Context, id uint) (*models.Summary, error) {
	var summary models.Summary
	if err := r.db.WithContext(ctx).First(&summary, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	return &summary, nil
}

func (r *repository) GetSummariesByTranscript(ctx context.Context, transcriptID uint) ([]*models.Summary, error) {
	var summaries []*models.Summary
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at ASC").
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("getting summaries by transcript: %w", err)
	}
	return summaries, nil
}

func (r *repository) CreateExtraction(ctx context.Context, extraction *models.Extraction) error {
	if err := r.db.WithContext(ctx).Create(extraction).Error; err != nil {
		return fmt.Errorf("creating extraction: %w", err)
	}
	return nil
}

func (r *repository) GetExtractionByID(ctx context.Context, id uint) (*models.Extraction, error) {
	var extraction models.Extraction
	if err := r.db.WithContext(ctx).First(&extraction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExtractionNotFound
		}
		return nil, fmt.Errorf("getting extraction: %w", err)
	}
	return &extraction, nil
}

func (r *repository) GetExtractionsByTranscript(ctx context.Context, transcriptID uint) ([]*models.Extraction, error) {
	var extractions []*models.Extraction
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at ASC").
		Find(&extractions).Error; err != nil {
		return nil, fmt.Errorf("getting extractions by transcript: %w", err)
	}
	return extractions, nil
}
