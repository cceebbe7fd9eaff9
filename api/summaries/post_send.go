package summaries

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/internal/services/insights"
)

// Send queues email delivery of the summary to every meeting participant
// with a registered account. Participants without accounts are skipped.
func Send(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid summary ID",
			})
			return
		}

		if _, err := deps.InsightService.GetSummary(c.Request.Context(), uint(id)); err != nil {
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

		includeLink := c.DefaultQuery("include_transcript_link", "true") == "true"

		enqueued, err := deps.Orchestrator.FanOutSummaryDelivery(c.Request.Context(), uint(id), includeLink)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to queue deliveries",
			})
			return
		}

		c.JSON(http.StatusAccepted, types.DeliveryFanOutResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "deliveries queued"},
			Enqueued:     enqueued,
		})
	}
}
