package notifications

import (
	"fmt"
	"strings"

	"github.com/edenhq/meeting-api/internal/services/ai"
)

const summaryTemplate = `Hello %s,

Here is the meeting summary for "%s":

Executive summary:
%s

Key action items:
%s

Decisions:
%s

Risks / blockers:
%s

%sBest,
Meeting Intelligence
`

func bulleted(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}

// FormatSummaryEmail renders the subject and plain-text body for a summary
// notification. An empty display name falls back to the address; a non-empty
// transcript link adds a transcript section.
func FormatSummaryEmail(displayName, email, meetingTitle string, summary *ai.SummaryResult, transcriptLink string) (subject, body string) {
	name := displayName
	if name == "" {
		name = email
	}

	transcriptSection := ""
	if transcriptLink != "" {
		transcriptSection = fmt.Sprintf("Transcript: %s\n\n", transcriptLink)
	}

	subject = fmt.Sprintf("Meeting Summary: %s", meetingTitle)
	body = fmt.Sprintf(summaryTemplate,
		name,
		meetingTitle,
		summary.ExecutiveSummary,
		bulleted(summary.KeyPoints),
		bulleted(summary.Decisions),
		bulleted(summary.Risks),
		transcriptSection,
	)
	return subject, body
}
