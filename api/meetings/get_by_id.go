package meetings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	meetingsService "github.com/edenhq/meeting-api/internal/services/meetings"
)

// GetByID returns a meeting with its participants
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid meeting ID",
			})
			return
		}

		meeting, err := deps.MeetingRepo.GetMeetingByID(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, meetingsService.ErrMeetingNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "meeting not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load meeting",
			})
			return
		}

		c.JSON(http.StatusOK, types.MeetingResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Meeting:      types.FromMeeting(meeting),
		})
	}
}
