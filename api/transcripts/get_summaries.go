package transcripts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// GetSummaries lists the decoded summaries derived from a transcript
func GetSummaries(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid transcript ID",
			})
			return
		}

		summaries, err := deps.InsightService.GetSummariesByTranscript(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load summaries",
			})
			return
		}

		out := make([]types.Summary, 0, len(summaries))
		for _, summary := range summaries {
			decoded, err := deps.InsightService.DecodeSummary(c.Request.Context(), summary)
			if err != nil {
				c.JSON(http.StatusInternalServerError, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "failed to decode summary",
				})
				return
			}
			out = append(out, types.Summary{
				ID:               summary.ID,
				TranscriptID:     summary.TranscriptID,
				MeetingID:        summary.MeetingID,
				ExecutiveSummary: decoded.ExecutiveSummary,
				KeyPoints:        decoded.KeyPoints,
				Decisions:        decoded.Decisions,
				Risks:            decoded.Risks,
				Length:           decoded.Length,
				Tone:             decoded.Tone,
				CreatedAt:        summary.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        types.StatusOK,
			"transcript_id": id,
			"summaries":     out,
			"count":         len(out),
		})
	}
}
