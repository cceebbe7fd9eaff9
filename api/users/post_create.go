package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/internal/models"
)

// Create registers an account. Summary deliveries only reach participants
// whose email matches a registered user.
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid request body: " + err.Error(),
			})
			return
		}

		user := &models.User{
			Email:             req.Email,
			DisplayName:       req.DisplayName,
			PreferredLanguage: req.PreferredLanguage,
			IsActive:          true,
		}
		if err := deps.UserRepo.CreateUser(c.Request.Context(), user); err != nil {
			c.JSON(http.StatusConflict, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to create user; email may already be registered",
			})
			return
		}

		c.JSON(http.StatusCreated, types.UserResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			User:         types.FromUser(user),
		})
	}
}
