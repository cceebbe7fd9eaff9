package transcripts

import (
	"context"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/pkg/segments"
)

// Repository provides access to transcripts and their translations.
type Repository interface {
	CreateTranscript(ctx context.Context, transcript *models.Transcript) error
	GetTranscriptByID(ctx context.Context, id uint) (*models.Transcript, error)
	GetTranscriptsByAudioFile(ctx context.Context, audioFileID uint) ([]*models.Transcript, error)
	DeleteTranscript(ctx context.Context, id uint) error

	CreateTranslation(ctx context.Context, translation *models.TranslatedTranscript) error
	GetTranslationsByTranscript(ctx context.Context, transcriptID uint) ([]*models.TranslatedTranscript, error)
}

// Service wraps the repository with the crypto boundary: segments are
// encrypted before persistence and decrypted on read, with a fallback parse
// for blobs stored unencrypted under a prior configuration.
type Service interface {
	StoreTranscript(ctx context.Context, audioFileID uint, meetingID *uint, segs []segments.Segment, detectedLanguage string) (*models.Transcript, error)
	GetTranscript(ctx context.Context, id uint) (*models.Transcript, error)
	LatestTranscript(ctx context.Context, audioFileID uint) (*models.Transcript, error)
	GetSegments(ctx context.Context, transcript *models.Transcript) ([]segments.Segment, error)

	StoreTranslation(ctx context.Context, transcript *models.Transcript, targetLanguage string, segs []segments.Segment) (*models.TranslatedTranscript, error)
	GetTranslations(ctx context.Context, transcriptID uint) ([]*models.TranslatedTranscript, error)
	GetTranslationSegments(ctx context.Context, translation *models.TranslatedTranscript) ([]segments.Segment, error)
}
