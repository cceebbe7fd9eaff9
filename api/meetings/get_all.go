package meetings

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// GetAll lists meetings, newest first
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if offset < 0 {
			offset = 0
		}

		meetings, err := deps.MeetingRepo.ListMeetings(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to list meetings",
			})
			return
		}

		out := make([]types.Meeting, 0, len(meetings))
		for _, m := range meetings {
			out = append(out, *types.FromMeeting(m))
		}

		c.JSON(http.StatusOK, types.MeetingsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Meetings:     out,
			Count:        len(out),
		})
	}
}
