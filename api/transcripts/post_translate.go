package transcripts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	transcriptsService "github.com/edenhq/meeting-api/internal/services/transcripts"
)

// Translate queues a translation of the transcript into a target language
func Translate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid transcript ID",
			})
			return
		}

		var req types.TranslateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid request body: " + err.Error(),
			})
			return
		}

		if err := ensureTranscriptExists(c, deps, uint(id)); err != nil {
			return
		}

		if err := deps.Orchestrator.EnqueueTranslation(c.Request.Context(), uint(id), req.Language); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to queue translation",
			})
			return
		}

		c.JSON(http.StatusAccepted, types.QueuedResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "translation queued"},
			JobType:      "translation",
		})
	}
}

// ensureTranscriptExists writes the error response itself and returns a
// non-nil error when the handler should stop.
func ensureTranscriptExists(c *gin.Context, deps *types.Dependencies, id uint) error {
	_, err := deps.TranscriptService.GetTranscript(c.Request.Context(), id)
	if err == nil {
		return nil
	}
	if errors.Is(err, transcriptsService.ErrTranscriptNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Status: types.StatusError,
			Error:  "transcript not found",
		})
		return err
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Status: types.StatusError,
		Error:  "failed to load transcript",
	})
	return err
}
