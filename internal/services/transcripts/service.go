package transcripts

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/pkg/crypto"
	"github.com/edenhq/meeting-api/pkg/segments"
)

type service struct {
	repo   Repository
	crypto *crypto.Boundary
}

var _ Service = (*service)(nil)

func NewService(repo Repository, boundary *crypto.Boundary) Service {
	return &service{repo: repo, crypto: boundary}
}

func (s *service) StoreTranscript(ctx context.Context, audioFileID uint, meetingID *uint, segs []segments.Segment, detectedLanguage string) (*models.Transcript, error) {
	blob, err := segments.Encode(segs)
	if err != nil {
		return nil, err
	}

	stored := s.crypto.Encrypt(blob)
	transcript := &models.Transcript{
		AudioFileID:      audioFileID,
		MeetingID:        meetingID,
		Segments:         stored,
		Encrypted:        stored != blob,
		DetectedLanguage: detectedLanguage,
	}
	if err := s.repo.CreateTranscript(ctx, transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

func (s *service) GetTranscript(ctx context.Context, id uint) (*models.Transcript, error) {
	return s.repo.GetTranscriptByID(ctx, id)
}

// LatestTranscript returns the most recent transcript for an audio file, or
// ErrTranscriptNotFound when none has been stored yet.
func (s *service) LatestTranscript(ctx context.Context, audioFileID uint) (*models.Transcript, error) {
	all, err := s.repo.GetTranscriptsByAudioFile(ctx, audioFileID)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrTranscriptNotFound
	}
	return all[len(all)-1], nil
}

// GetSegments decrypts and decodes a transcript's segments. A blob that fails
// decryption is parsed as plain JSON: it may have been stored before a key
// was configured.
func (s *service) GetSegments(ctx context.Context, transcript *models.Transcript) ([]segments.Segment, error) {
	blob := transcript.Segments
	plaintext, err := s.crypto.Decrypt(blob)
	if err != nil {
		if !errors.Is(err, crypto.ErrInvalidCiphertext) {
			return nil, fmt.Errorf("decrypting transcript %d: %w", transcript.ID, err)
		}
		log.Printf("[WARN] Transcript %d: not decryptable with configured key, parsing as plaintext", transcript.ID)
		plaintext = blob
	}

	segs, err := segments.Decode(plaintext)
	if err != nil {
		return nil, fmt.Errorf("decoding transcript %d segments: %w", transcript.ID, err)
	}
	return segs, nil
}

func (s *service) StoreTranslation(ctx context.Context, transcript *models.Transcript, targetLanguage string, segs []segments.Segment) (*models.TranslatedTranscript, error) {
	blob, err := segments.Encode(segs)
	if err != nil {
		return nil, err
	}

	stored := s.crypto.Encrypt(blob)
	audioFileID := transcript.AudioFileID
	translation := &models.TranslatedTranscript{
		TranscriptID:   transcript.ID,
		AudioFileID:    &audioFileID,
		MeetingID:      transcript.MeetingID,
		TargetLanguage: targetLanguage,
		Segments:       stored,
		Encrypted:      stored != blob,
	}
	if err := s.repo.CreateTranslation(ctx, translation); err != nil {
		return nil, err
	}
	return translation, nil
}

func (s *service) GetTranslations(ctx context.Context, transcriptID uint) ([]*models.TranslatedTranscript, error) {
	return s.repo.GetTranslationsByTranscript(ctx, transcriptID)
}

// GetTranslationSegments decrypts and decodes one translation's segments,
// with the same plaintext fallback as GetSegments.
func (s *service) GetTranslationSegments(ctx context.Context, translation *models.TranslatedTranscript) ([]segments.Segment, error) {
	blob := translation.Segments
	plaintext, err := s.crypto.Decrypt(blob)
	if err != nil {
		if !errors.Is(err, crypto.ErrInvalidCiphertext) {
			return nil, fmt.Errorf("decrypting translation %d: %w", translation.ID, err)
		}
		log.Printf("[WARN] Translation %d: not decryptable with configured key, parsing as plaintext", translation.ID)
		plaintext = blob
	}

	segs, err := segments.Decode(plaintext)
	if err != nil {
		return nil, fmt.Errorf("decoding translation %d segments: %w", translation.ID, err)
	}
	return segs, nil
}
