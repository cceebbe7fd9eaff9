package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenhq/meeting-api/pkg/segments"
)

func TestStubTranscriberDeterministic(t *testing.T) {
	tr := NewStubTranscriber()
	ctx := context.Background()

	audio := []byte("pcm-audio-payload")
	first, err := tr.Transcribe(ctx, audio)
	require.NoError(t, err)
	second, err := tr.Transcribe(ctx, audio)
	require.NoError(t, err)

	require.Len(t, first.Segments, 1)
	assert.Equal(t, first.Segments[0].Text, second.Segments[0].Text)
	assert.Equal(t, "en", first.DetectedLanguage)
	assert.Equal(t, "unknown", first.Segments[0].Speaker)
}

func TestStubTranscriberRejectsEmptyAudio(t *testing.T) {
	tr := NewStubTranscriber()
	_, err := tr.Transcribe(context.Background(), nil)
	assert.Error(t, err)
}

func TestTagTranslatorPreservesStructure(t *testing.T) {
	tr := NewTagTranslator()
	segs := []segments.Segment{
		{Speaker: "A", Start: 0, End: 2.5, Text: "Good morning everyone."},
		{Speaker: "B", Start: 2.5, End: 4, Text: "Let's begin."},
	}

	out, err := tr.Translate(context.Background(), segs, "de")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Speaker)
	assert.Equal(t, 2.5, out[0].End)
	assert.Equal(t, "Good morning everyone.", out[0].Text)
	assert.Equal(t, "Good morning everyone. [de]", out[0].TranslatedText)
	assert.Equal(t, "Let's begin. [de]", out[1].TranslatedText)
}

func TestTagTranslatorRequiresLanguage(t *testing.T) {
	_, err := NewTagTranslator().Translate(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestHeuristicSummarizer(t *testing.T) {
	s := NewHeuristicSummarizer()
	segs := []segments.Segment{
		{Speaker: "A", Text: "We decided to ship Friday. The rollout plan looks solid."},
		{Speaker: "B", Text: "There is a risk the database migration overruns."},
	}

	out, err := s.Summarize(context.Background(), segs, LengthShort, ToneFormal)
	require.NoError(t, err)
	assert.Equal(t, "We decided to ship Friday", out.ExecutiveSummary)
	assert.Contains(t, out.Decisions, "We decided to ship Friday")
	assert.Contains(t, out.Risks, "There is a risk the database migration overruns")
	assert.Len(t, out.KeyPoints, 3)
	assert.Equal(t, LengthShort, out.Length)
	assert.Equal(t, ToneFormal, out.Tone)
}

func TestHeuristicSummarizerLengths(t *testing.T) {
	s := NewHeuristicSummarizer()
	segs := []segments.Segment{
		{Text: "One. Two. Three. Four. Five. Six."},
	}

	short, err := s.Summarize(context.Background(), segs, LengthShort, "")
	require.NoError(t, err)
	assert.Equal(t, "One", short.ExecutiveSummary)

	medium, err := s.Summarize(context.Background(), segs, LengthMedium, "")
	require.NoError(t, err)
	assert.Equal(t, "One Two Three", medium.ExecutiveSummary)

	long, err := s.Summarize(context.Background(), segs, LengthLong, "")
	require.NoError(t, err)
	assert.Equal(t, "One Two Three Four Five", long.ExecutiveSummary)
}

func TestHeuristicSummarizerEmptyTranscript(t *testing.T) {
	out, err := NewHeuristicSummarizer().Summarize(context.Background(), nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, "No transcribed content to summarize.", out.ExecutiveSummary)
	assert.Empty(t, out.KeyPoints)
}

func TestHeuristicExtractor(t *testing.T) {
	e := NewHeuristicExtractor()
	segs := []segments.Segment{
		{Speaker: "A", Text: "Alice will update the deployment runbook"},
		{Speaker: "B", Text: "we agreed to adopt the new API"},
		{Speaker: "C", Text: "there is a problem with the staging cluster"},
		{Speaker: "D", Text: "the weather is nice today"},
	}

	out, err := e.Extract(context.Background(), segs)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "complete", out.Status)
	assert.InDelta(t, 0.8, out.OverallConfidence, 0.001)

	assert.Equal(t, "Alice", out.Items[0].Owner)
	assert.False(t, out.Items[0].Decision)
	assert.True(t, out.Items[1].Decision)
	assert.Empty(t, out.Items[2].Owner)
	assert.False(t, out.Items[2].Decision)
}

func TestHeuristicExtractorDropsOwnerlessActions(t *testing.T) {
	e := NewHeuristicExtractor()
	segs := []segments.Segment{
		{Text: "someone should fix the build"},
	}

	out, err := e.Extract(context.Background(), segs)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, "partial", out.Status)
	assert.Zero(t, out.OverallConfidence)
}

func TestHeuristicExtractorStripsFillers(t *testing.T) {
	e := NewHeuristicExtractor()
	segs := []segments.Segment{
		{Text: "um, Bob will um, send the notes"},
	}

	out, err := e.Extract(context.Background(), segs)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Bob", out.Items[0].Owner)
	assert.NotContains(t, out.Items[0].Text, "um,")
}