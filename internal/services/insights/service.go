package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/internal/services/ai"
	"github.com/edenhq/meeting-api/pkg/crypto"
)

type service struct {
	repo   Repository
	crypto *crypto.Boundary
}

var _ Service = (*service)(nil)

func NewService(repo Repository, boundary *crypto.Boundary) Service {
	return &service{repo: repo, crypto: boundary}
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding list: %w", err)
	}
	return string(data), nil
}

// decryptOrPlain falls back to the raw blob when it is not a valid token for
// the configured key; the blob may predate the key.
func (s *service) decryptOrPlain(blob, what string, id uint) string {
	plaintext, err := s.crypto.Decrypt(blob)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidCiphertext) {
			log.Printf("[WARN] %s %d: not decryptable with configured key, using raw value", what, id)
		}
		return blob
	}
	return plaintext
}

func (s *service) StoreSummary(ctx context.Context, transcriptID uint, meetingID *uint, result *ai.SummaryResult) (*models.Summary, error) {
	keyPoints, err := marshalList(result.KeyPoints)
	if err != nil {
		return nil, err
	}
	decisions, err := marshalList(result.Decisions)
	if err != nil {
		return nil, err
	}
	risks, err := marshalList(result.Risks)
	if err != nil {
		return nil, err
	}

	storedExec := s.crypto.Encrypt(result.ExecutiveSummary)
	summary := &models.Summary{
		TranscriptID:     &transcriptID,
		MeetingID:        meetingID,
		ExecutiveSummary: storedExec,
		KeyPoints:        s.crypto.Encrypt(keyPoints),
		Decisions:        s.crypto.Encrypt(decisions),
		Risks:            s.crypto.Encrypt(risks),
		Encrypted:        storedExec != result.ExecutiveSummary,
		Length:           result.Length,
		Tone:             result.Tone,
	}
	if err := s.repo.CreateSummary(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *service) GetSummary(ctx context.Context, id uint) (*models.Summary, error) {
	return s.repo.GetSummaryByID(ctx, id)
}

func (s *service) GetSummariesByTranscript(ctx context.Context, transcriptID uint) ([]*models.Summary, error) {
	return s.repo.GetSummariesByTranscript(ctx, transcriptID)
}

func (s *service) GetExtractionsByTranscript(ctx context.Context, transcriptID uint) ([]*models.Extraction, error) {
	return s.repo.GetExtractionsByTranscript(ctx, transcriptID)
}

func (s *service) DecodeSummary(ctx context.Context, summary *models.Summary) (*ai.SummaryResult, error) {
	result := &ai.SummaryResult{
		ExecutiveSummary: s.decryptOrPlain(summary.ExecutiveSummary, "Summary", summary.ID),
		Length:           summary.Length,
		Tone:             summary.Tone,
	}

	for _, field := range []struct {
		blob string
		dst  *[]string
	}{
		{summary.KeyPoints, &result.KeyPoints},
		{summary.Decisions, &result.Decisions},
		{summary.Risks, &result.Risks},
	} {
		*field.dst = []string{}
		if field.blob == "" {
			continue
		}
		plain := s.decryptOrPlain(field.blob, "Summary", summary.ID)
		if err := json.Unmarshal([]byte(plain), field.dst); err != nil {
			return nil, fmt.Errorf("decoding summary %d list: %w", summary.ID, err)
		}
	}
	return result, nil
}

func (s *service) StoreExtraction(ctx context.Context, transcriptID uint, meetingID *uint, result *ai.ExtractionResult) (*models.Extraction, error) {
	items := result.Items
	if items == nil {
		items = []ai.ExtractionItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding extraction items: %w", err)
	}

	stored := s.crypto.Encrypt(string(data))
	extraction := &models.Extraction{
		TranscriptID: transcriptID,
		MeetingID:    meetingID,
		Items:        stored,
		Encrypted:    stored != string(data),
		Confidence:   strconv.FormatFloat(result.OverallConfidence, 'f', 2, 64),
	}
	if err := s.repo.CreateExtraction(ctx, extraction); err != nil {
		return nil, err
	}
	return extraction, nil
}

func (s *service) DecodeExtraction(ctx context.Context, extraction *models.Extraction) (*ai.ExtractionResult, error) {
	plain := s.decryptOrPlain(extraction.Items, "Extraction", extraction.ID)

	result := &ai.ExtractionResult{Items: []ai.ExtractionItem{}}
	if plain != "" {
		if err := json.Unmarshal([]byte(plain), &result.Items); err != nil {
			return nil, fmt.Errorf("decoding extraction %d items: %w", extraction.ID, err)
		}
	}
	if conf, err := strconv.ParseFloat(extraction.Confidence, 64); err == nil {
		result.OverallConfidence = conf
	}
	if len(result.Items) > 0 {
		result.Status = "complete"
	} else {
		result.Status = "partial"
	}
	return result, nil
}
