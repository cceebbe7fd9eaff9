package ai

import (
	"context"
	"regexp"
	"strings"

	"github.com/edenhq/meeting-api/pkg/segments"
)

// ownerPattern pulls a capitalized name out of "Alice will ..." phrasing.
var ownerPattern = regexp.MustCompile(`([A-Z][a-z]+)\s+will`)

// fillerReplacer strips common speech fillers before classification.
var fillerReplacer = strings.NewReplacer("um,", "", "uh,", "", "like,", "")

// HeuristicExtractor classifies each normalized statement by keyword intent
// and emits action items, decisions and risks. Action items without an
// identifiable owner are dropped rather than attributed to nobody.
type HeuristicExtractor struct{}

// NewHeuristicExtractor returns the built-in extraction collaborator.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

const itemConfidence = 0.8

func classifyStatement(text string) string {
	lower := strings.ToLower(text)
	intent := "information"
	if strings.Contains(lower, "will") || strings.Contains(lower, "should") {
		intent = "action"
	}
	if strings.Contains(lower, "decide") || strings.Contains(lower, "agreed") {
		intent = "decision"
	}
	if strings.Contains(lower, "risk") || strings.Contains(lower, "problem") {
		intent = "risk"
	}
	return intent
}

func (e *HeuristicExtractor) Extract(ctx context.Context, segs []segments.Segment) (*ExtractionResult, error) {
	result := &ExtractionResult{Items: []ExtractionItem{}}

	for _, seg := range segs {
		text := strings.TrimSpace(fillerReplacer.Replace(seg.Text))
		if text == "" {
			continue
		}

		switch classifyStatement(text) {
		case "action":
			m := ownerPattern.FindStringSubmatch(text)
			if m == nil {
				// no owner, no action item
				continue
			}
			result.Items = append(result.Items, ExtractionItem{
				Text:       text,
				Owner:      m[1],
				Confidence: itemConfidence,
			})
		case "decision":
			result.Items = append(result.Items, ExtractionItem{
				Text:       text,
				Decision:   true,
				Confidence: itemConfidence,
			})
		case "risk":
			result.Items = append(result.Items, ExtractionItem{
				Text:       text,
				Confidence: itemConfidence,
			})
		}
	}

	if len(result.Items) == 0 {
		result.Status = "partial"
		return result, nil
	}

	var total float64
	for _, it := range result.Items {
		total += it.Confidence
	}
	result.OverallConfidence = total / float64(len(result.Items))
	result.Status = "complete"
	return result, nil
}
