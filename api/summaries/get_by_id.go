package summaries

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/internal/services/insights"
)

// GetByID returns one summary with its encrypted fields decoded
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid summary ID",
			})
			return
		}

		summary, err := deps.InsightService.GetSummary(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, insights.ErrSummaryNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "summary not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load summary",
			})
			return
		}

		decoded, err := deps.InsightService.DecodeSummary(c.Request.Context(), summary)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to decode summary",
			})
			return
		}

		c.JSON(http.StatusOK, types.SummaryResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Summary: &types.Summary{
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
			},
		})
	}
}
