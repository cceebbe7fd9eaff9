package transcripts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// Extract queues action item extraction for the transcript
func Extract(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid transcript ID",
			})
			return
		}

		if err := ensureTranscriptExists(c, deps, uint(id)); err != nil {
			return
		}

		if err := deps.Orchestrator.EnqueueExtraction(c.Request.Context(), uint(id)); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to queue extraction",
			})
			return
		}

		c.JSON(http.StatusAccepted, types.QueuedResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "extraction queued"},
			JobType:      "extraction",
		})
	}
}
