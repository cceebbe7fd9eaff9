package listeners

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	listenersService "github.com/edenhq/meeting-api/internal/services/listeners"
)

// Cancel cancels a scheduled session. A session that has already started
// joining cannot be cancelled; the race is decided by a single conditional
// update, so one of cancel and join always wins cleanly.
func Cancel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid session ID",
			})
			return
		}

		err = deps.ListenerScheduler.Cancel(c.Request.Context(), uint(id))
		switch {
		case err == nil:
			c.JSON(http.StatusOK, types.BaseResponse{
				Status:  types.StatusOK,
				Message: "listener session cancelled",
			})
		case errors.Is(err, listenersService.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "listener session not found",
			})
		case errors.Is(err, listenersService.ErrNotCancellable):
			c.JSON(http.StatusConflict, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "listener session is no longer cancellable",
			})
		default:
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to cancel listener session",
			})
		}
	}
}
