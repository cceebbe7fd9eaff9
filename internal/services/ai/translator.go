package ai

import (
	"context"
	"fmt"

	"github.com/edenhq/meeting-api/pkg/segments"
)

// TagTranslator marks segment text with the target language while preserving
// speakers and timestamps. A neural MT backend would replace this with real
// translations under the same interface.
type TagTranslator struct{}

// NewTagTranslator returns the built-in translation collaborator.
func NewTagTranslator() *TagTranslator {
	return &TagTranslator{}
}

func (t *TagTranslator) Translate(ctx context.Context, segs []segments.Segment, targetLanguage string) ([]segments.Segment, error) {
	if targetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	out := make([]segments.Segment, 0, len(segs))
	for _, s := range segs {
		translated := s
		translated.TranslatedText = fmt.Sprintf("%s [%s]", s.Text, targetLanguage)
		out = append(out, translated)
	}
	return out, nil
}
