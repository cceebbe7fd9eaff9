// Package segments defines the canonical transcript segment type and its wire
// encoding. Upstream transcription and translation services disagree on field
// names (speaker vs speaker_id, text vs original_text); all variants are
// normalized here, at the deserialization boundary, so consumers never have to.
package segments

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Segment is one speaker-attributed span of a transcript.
type Segment struct {
	Speaker          string  `json:"speaker"`
	Start            float64 `json:"start_time"`
	End              float64 `json:"end_time"`
	Text             string  `json:"text"`
	DetectedLanguage string  `json:"detected_language,omitempty"`
	TranslatedText   string  `json:"translated_text,omitempty"`
}

// wireSegment accepts every field-name variant seen in upstream payloads.
type wireSegment struct {
	Speaker          string   `json:"speaker"`
	SpeakerID        string   `json:"speaker_id"`
	Start            *float64 `json:"start_time"`
	StartShort       *float64 `json:"start"`
	End              *float64 `json:"end_time"`
	EndShort         *float64 `json:"end"`
	Text             string   `json:"text"`
	OriginalText     string   `json:"original_text"`
	DetectedLanguage string   `json:"detected_language"`
	TranslatedText   string   `json:"translated_text"`
}

// UnmarshalJSON normalizes field-name variants into the canonical form.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var w wireSegment
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	s.Speaker = w.Speaker
	if s.Speaker == "" {
		s.Speaker = w.SpeakerID
	}
	s.Text = w.Text
	if s.Text == "" {
		s.Text = w.OriginalText
	}
	if w.Start != nil {
		s.Start = *w.Start
	} else if w.StartShort != nil {
		s.Start = *w.StartShort
	}
	if w.End != nil {
		s.End = *w.End
	} else if w.EndShort != nil {
		s.End = *w.EndShort
	}
	s.DetectedLanguage = w.DetectedLanguage
	s.TranslatedText = w.TranslatedText
	return nil
}

// Encode serializes segments to the canonical JSON array stored on transcripts.
func Encode(segs []Segment) (string, error) {
	if segs == nil {
		segs = []Segment{}
	}
	data, err := json.Marshal(segs)
	if err != nil {
		return "", fmt.Errorf("encoding segments: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored segments blob. An empty blob decodes to no segments.
func Decode(blob string) ([]Segment, error) {
	if strings.TrimSpace(blob) == "" {
		return []Segment{}, nil
	}
	var segs []Segment
	if err := json.Unmarshal([]byte(blob), &segs); err != nil {
		return nil, fmt.Errorf("decoding segments: %w", err)
	}
	return segs, nil
}

// Sentences splits segment texts into trimmed sentence candidates, in order.
func Sentences(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		text := strings.NewReplacer("!", ".", "?", ".").Replace(s.Text)
		for _, part := range strings.Split(text, ".") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
