package transcripts

import (
	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// RegisterRoutes registers transcript routes on the given router group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/:id", GetByID(deps))
	group.GET("/:id/translations", GetTranslations(deps))
	group.GET("/:id/summaries", GetSummaries(deps))
	group.GET("/:id/extractions", GetExtractions(deps))
	group.POST("/:id/translate", Translate(deps))
	group.POST("/:id/summarize", Summarize(deps))
	group.POST("/:id/extract", Extract(deps))
}
