package privacy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	usersService "github.com/edenhq/meeting-api/internal/services/users"
)

// DeleteUser queues full erasure of an account: recordings, stored audio,
// participant rows, consents and deliveries, then the account itself. The
// erasure runs asynchronously so storage outages retry instead of blocking
// the request.
func DeleteUser(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid user ID",
			})
			return
		}

		if _, err := deps.UserRepo.GetUserByID(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, usersService.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "user not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load user",
			})
			return
		}

		if err := deps.Orchestrator.EnqueueUserDeletion(c.Request.Context(), uint(id)); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to queue account erasure",
			})
			return
		}

		c.JSON(http.StatusAccepted, types.QueuedResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "account erasure queued"},
			JobType:      "user_deletion",
		})
	}
}
