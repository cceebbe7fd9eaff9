package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edenhq/meeting-api/internal/services/ai"
	"github.com/edenhq/meeting-api/pkg/config"
)

func TestFormatSummaryEmail(t *testing.T) {
	summary := &ai.SummaryResult{
		ExecutiveSummary: "We decided to ship Friday",
		KeyPoints:        []string{"Ship Friday", "Update runbook"},
		Decisions:        []string{"We decided to ship Friday"},
		Risks:            []string{},
	}

	subject, body := FormatSummaryEmail("Alice", "alice@example.com", "Weekly Sync", summary, "")
	assert.Equal(t, "Meeting Summary: Weekly Sync", subject)
	assert.Contains(t, body, "Hello Alice,")
	assert.Contains(t, body, "We decided to ship Friday")
	assert.Contains(t, body, "- Ship Friday")
	assert.Contains(t, body, "- Update runbook")
	assert.Contains(t, body, "Risks / blockers:\nNone")
	assert.NotContains(t, body, "Transcript:")
}

func TestFormatSummaryEmailFallbacks(t *testing.T) {
	summary := &ai.SummaryResult{ExecutiveSummary: "Short recap"}

	subject, body := FormatSummaryEmail("", "bob@example.com", "Planning", summary, "https://app.example.com/transcripts/7")
	assert.Equal(t, "Meeting Summary: Planning", subject)
	assert.Contains(t, body, "Hello bob@example.com,")
	assert.Contains(t, body, "Key action items:\nNone")
	assert.Contains(t, body, "Transcript: https://app.example.com/transcripts/7")
}

func TestNewFromConfig(t *testing.T) {
	sender := NewFromConfig(config.SMTPConfig{})
	assert.IsType(t, ConsoleSender{}, sender)

	sender = NewFromConfig(config.SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.IsType(t, &SMTPSender{}, sender)
}
