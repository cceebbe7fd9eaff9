package insights

import (
	"context"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/internal/services/ai"
)

// Repository provides access to summaries and extractions.
type Repository interface {
	CreateSummary(ctx context.Context, summary *models.Summary) error
	GetSummaryByID(ctx context.Context, id uint) (*models.Summary, error)
	GetSummariesByTranscript(ctx context.Context, transcriptID uint) ([]*models.Summary, error)

	CreateExtraction(ctx context.Context, extraction *models.Extraction) error
	GetExtractionByID(ctx context.Context, id uint) (*models.Extraction, error)
	GetExtractionsByTranscript(ctx context.Context, transcriptID uint) ([]*models.Extraction, error)
}

// Service persists AI stage outputs through the crypto boundary and decodes
// them back into structured results.
type Service interface {
	StoreSummary(ctx context.Context, transcriptID uint, meetingID *uint, result *ai.SummaryResult) (*models.Summary, error)
	GetSummary(ctx context.Context, id uint) (*models.Summary, error)
	GetSummariesByTranscript(ctx context.Context, transcriptID uint) ([]*models.Summary, error)
	DecodeSummary(ctx context.Context, summary *models.Summary) (*ai.SummaryResult, error)

	StoreExtraction(ctx context.Context, transcriptID uint, meetingID *uint, result *ai.ExtractionResult) (*models.Extraction, error)
	GetExtractionsByTranscript(ctx context.Context, transcriptID uint) ([]*models.Extraction, error)
	DecodeExtraction(ctx context.Context, extraction *models.Extraction) (*ai.ExtractionResult, error)
}
