package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/edenhq/meeting-api/pkg/segments"
)

// StubTranscriber is a deterministic stand-in for a hosted speech-to-text
// service. It produces a single full-length segment whose text is derived
// from the audio bytes, so repeated runs over the same audio agree.
type StubTranscriber struct{}

// NewStubTranscriber returns the built-in transcription collaborator.
func NewStubTranscriber() *StubTranscriber {
	return &StubTranscriber{}
}

func (t *StubTranscriber) Transcribe(ctx context.Context, audio []byte) (*TranscriptionResult, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	// Rough duration estimate assuming 16kHz 16-bit mono PCM.
	duration := float64(len(audio)) / 32000.0

	sum := sha256.Sum256(audio)
	text := fmt.Sprintf("Transcription of %d bytes of meeting audio (digest %s).",
		len(audio), hex.EncodeToString(sum[:4]))

	return &TranscriptionResult{
		Segments: []segments.Segment{{
			Speaker:          "unknown",
			Start:            0,
			End:              duration,
			Text:             text,
			DetectedLanguage: "en",
		}},
		DetectedLanguage: "en",
	}, nil
}
