package jobqueue

import (
	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// RegisterRoutes registers job status routes on the given router group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/:id", GetByID(deps))
}
