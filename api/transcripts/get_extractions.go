package transcripts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// GetExtractions lists the decoded extractions derived from a transcript
func GetExtractions(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid transcript ID",
			})
			return
		}

		extractions, err := deps.InsightService.GetExtractionsByTranscript(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load extractions",
			})
			return
		}

		out := make([]types.Extraction, 0, len(extractions))
		for _, extraction := range extractions {
			decoded, err := deps.InsightService.DecodeExtraction(c.Request.Context(), extraction)
			if err != nil {
				c.JSON(http.StatusInternalServerError, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "failed to decode extraction",
				})
				return
			}
			out = append(out, types.Extraction{
				ID:                extraction.ID,
				TranscriptID:      extraction.TranscriptID,
				Items:             decoded.Items,
				OverallConfidence: decoded.OverallConfidence,
				ExtractionStatus:  decoded.Status,
				CreatedAt:         extraction.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        types.StatusOK,
			"transcript_id": id,
			"extractions":   out,
			"count":         len(out),
		})
	}
}
