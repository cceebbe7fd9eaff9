package meetings

import (
	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// RegisterRoutes registers meeting routes on the given router group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Create(deps))
	group.GET("", GetAll(deps))
	group.GET("/:id", GetByID(deps))
}
