package listeners

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// Create schedules a bot-listener session. A future scheduled_at defers the
// join; a missing or past one joins immediately.
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ScheduleListenerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid request body: " + err.Error(),
			})
			return
		}

		session, err := deps.ListenerScheduler.Schedule(c.Request.Context(), req.MeetingID, req.ExternalLink, req.ScheduledAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to schedule listener session",
			})
			return
		}

		c.JSON(http.StatusCreated, types.ListenerResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "listener session scheduled"},
			Session:      types.FromListenerSession(session),
		})
	}
}
