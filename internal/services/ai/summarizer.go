package ai

import (
	"context"
	"strings"

	"github.com/edenhq/meeting-api/pkg/segments"
)

// Summary length and tone values accepted by the summarizer.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"

	ToneFormal         = "formal"
	ToneConversational = "conversational"
)

var (
	decisionWords = []string{"decide", "decision", "we will", "action:", "agreed"}
	riskWords     = []string{"risk", "blocker", "blocked", "issue", "problem"}

	// How many sentences the executive summary takes per length.
	execSentences = map[string]int{
		LengthShort:  1,
		LengthMedium: 3,
		LengthLong:   5,
	}
)

// HeuristicSummarizer builds summaries by selecting sentences from the
// transcript: the leading sentences become the executive summary, distinct
// sentences become key points, and keyword matches surface decisions and
// risks. An LLM backend would replace this behind the same interface.
type HeuristicSummarizer struct{}

// NewHeuristicSummarizer returns the built-in summarization collaborator.
func NewHeuristicSummarizer() *HeuristicSummarizer {
	return &HeuristicSummarizer{}
}

func containsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (s *HeuristicSummarizer) Summarize(ctx context.Context, segs []segments.Segment, length, tone string) (*SummaryResult, error) {
	if length == "" {
		length = LengthShort
	}
	if tone == "" {
		tone = ToneFormal
	}

	candidates := segments.Sentences(segs)
	result := &SummaryResult{
		KeyPoints: []string{},
		Decisions: []string{},
		Risks:     []string{},
		Length:    length,
		Tone:      tone,
	}

	if len(candidates) == 0 {
		result.ExecutiveSummary = "No transcribed content to summarize."
		return result, nil
	}

	n := execSentences[length]
	if n == 0 {
		n = 1
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	result.ExecutiveSummary = strings.Join(candidates[:n], " ")

	seen := make(map[string]bool)
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			result.KeyPoints = append(result.KeyPoints, c)
			if len(result.KeyPoints) >= 5 {
				break
			}
		}
	}

	for _, c := range candidates {
		if containsAny(c, decisionWords) {
			result.Decisions = append(result.Decisions, c)
		}
		if containsAny(c, riskWords) {
			result.Risks = append(result.Risks, c)
		}
	}

	return result, nil
}
