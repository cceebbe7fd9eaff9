// Package ai defines the pipeline's external intelligence collaborators and
// ships heuristic implementations of each. The implementations are pure
// functions over segments; swapping in hosted speech-to-text or LLM backends
// means implementing the same interfaces.
package ai

import (
	"context"

	"github.com/edenhq/meeting-api/pkg/segments"
)

// TranscriptionResult is the output of a transcription run.
type TranscriptionResult struct {
	Segments         []segments.Segment
	DetectedLanguage string
}

// SummaryResult is a structured meeting summary.
type SummaryResult struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyPoints        []string `json:"key_points"`
	Decisions        []string `json:"decisions"`
	Risks            []string `json:"risks"`
	Length           string   `json:"length"`
	Tone             string   `json:"tone"`
}

// ExtractionItem is one extracted fact: an action item, a decision, or a risk.
// Decision marks decisions; actions carry an owner; risks carry neither.
type ExtractionItem struct {
	Text       string  `json:"text"`
	Owner      string  `json:"owner,omitempty"`
	DueDate    string  `json:"due_date,omitempty"`
	Decision   bool    `json:"decision"`
	Confidence float64 `json:"confidence"`
}

// ExtractionResult is the full set of items pulled from a transcript, with an
// overall confidence aggregated over items.
type ExtractionResult struct {
	Items             []ExtractionItem `json:"items"`
	OverallConfidence float64          `json:"overall_confidence"`
	Status            string           `json:"status"` // complete|partial
}

// Transcriber converts raw audio into speaker-attributed segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (*TranscriptionResult, error)
}

// Translator renders segments into a target language, preserving speakers
// and timestamps.
type Translator interface {
	Translate(ctx context.Context, segs []segments.Segment, targetLanguage string) ([]segments.Segment, error)
}

// Summarizer produces a structured summary at the requested length and tone.
type Summarizer interface {
	Summarize(ctx context.Context, segs []segments.Segment, length, tone string) (*SummaryResult, error)
}

// Extractor pulls action items, decisions and risks out of segments.
type Extractor interface {
	Extract(ctx context.Context, segs []segments.Segment) (*ExtractionResult, error)
}
