package privacy

import (
	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// RegisterRoutes registers privacy routes on the given router group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.DELETE("/users/:id", DeleteUser(deps))
}
