package recordings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	recordingsService "github.com/edenhq/meeting-api/internal/services/recordings"
)

// GetByID returns a recording with its processing status
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid recording ID",
			})
			return
		}

		rec, err := deps.RecordingRepo.GetRecordingByID(c.Request.Context(), uint(id))
		if err != nil {
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

		c.JSON(http.StatusOK, types.RecordingResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Recording:    types.FromRecording(rec),
		})
	}
}
