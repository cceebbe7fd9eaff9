package transcripts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
)

// GetTranslations lists a transcript's translations with decrypted segments
func GetTranslations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid transcript ID",
			})
			return
		}

		translations, err := deps.TranscriptService.GetTranslations(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load translations",
			})
			return
		}

		out := make([]types.Translation, 0, len(translations))
		for _, tr := range translations {
			segs, err := deps.TranscriptService.GetTranslationSegments(c.Request.Context(), tr)
			if err != nil {
				c.JSON(http.StatusInternalServerError, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "failed to decode translation segments",
				})
				return
			}
			out = append(out, types.Translation{
				ID:             tr.ID,
				TargetLanguage: tr.TargetLanguage,
				Segments:       segs,
				CreatedAt:      tr.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, types.TranslationsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			TranscriptID: uint(id),
			Translations: out,
		})
	}
}
