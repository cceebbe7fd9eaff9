package transcripts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/internal/services/ai"
)

// Summarize queues a summarization of the transcript
func Summarize(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid transcript ID",
			})
			return
		}

		// Body is optional; defaults come from configuration.
		var req types.SummarizeRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "invalid request body: " + err.Error(),
				})
				return
			}
		}

		if req.Length != "" && req.Length != ai.LengthShort && req.Length != ai.LengthMedium && req.Length != ai.LengthLong {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "length must be one of short, medium, long",
			})
			return
		}
		if req.Tone != "" && req.Tone != ai.ToneFormal && req.Tone != ai.ToneConversational {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "tone must be formal or conversational",
			})
			return
		}

		if err := ensureTranscriptExists(c, deps, uint(id)); err != nil {
			return
		}

		if err := deps.Orchestrator.EnqueueSummarization(c.Request.Context(), uint(id), req.Length, req.Tone); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to queue summarization",
			})
			return
		}

		c.JSON(http.StatusAccepted, types.QueuedResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "summarization queued"},
			JobType:      "summarization",
		})
	}
}
