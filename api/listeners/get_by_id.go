package listeners

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	listenersService "github.com/edenhq/meeting-api/internal/services/listeners"
)

// GetByID returns a listener session and its current state
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid session ID",
			})
			return
		}

		session, err := deps.ListenerScheduler.Get(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, listenersService.ErrSessionNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "listener session not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load listener session",
			})
			return
		}

		c.JSON(http.StatusOK, types.ListenerResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Session:      types.FromListenerSession(session),
		})
	}
}
