package listeners

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// GetAll lists listener sessions, newest first
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		sessions, err := deps.ListenerScheduler.List(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to list listener sessions",
			})
			return
		}

		out := make([]types.ListenerSession, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, *types.FromListenerSession(s))
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   types.StatusOK,
			"sessions": out,
			"count":    len(out),
		})
	}
}
