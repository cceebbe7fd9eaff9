package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	usersService "github.com/edenhq/meeting-api/internal/services/users"
)

// GetByID returns an account
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid user ID",
			})
			return
		}

		user, err := deps.UserRepo.GetUserByID(c.Request.Context(), uint(id))
		if err != nil {
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

		c.JSON(http.StatusOK, types.UserResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			User:         types.FromUser(user),
		})
	}
}
