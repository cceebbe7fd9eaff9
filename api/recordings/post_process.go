package recordings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	recordingsService "github.com/edenhq/meeting-api/internal/services/recordings"
)

// Process re-queues transcription for an existing recording. The force flag
// makes the pipeline transcribe again even if the audio was already processed.
func Process(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid recording ID",
			})
			return
		}

		if _, err := deps.RecordingRepo.GetRecordingByID(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, recordingsService.ErrRecordingNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "recording not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load recording",
			})
			return
		}

		force := c.Query("force") == "true"
		if force {
			err = deps.Orchestrator.EnqueueReprocess(c.Request.Context(), uint(id))
		} else {
			err = deps.Orchestrator.EnqueueTranscription(c.Request.Context(), uint(id), 0)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to queue transcription",
			})
			return
		}

		c.JSON(http.StatusAccepted, types.QueuedResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "transcription queued"},
			JobType:      "transcription",
		})
	}
}
