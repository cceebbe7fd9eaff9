package recordings

import (
	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// RegisterRoutes registers recording routes on the given router group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Upload(deps))
	group.GET("/:id", GetByID(deps))
	group.POST("/:id/process", Process(deps))
}
