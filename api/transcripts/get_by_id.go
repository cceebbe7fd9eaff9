package transcripts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	transcriptsService "github.com/edenhq/meeting-api/internal/services/transcripts"
)

// GetByID returns a transcript with its segments decrypted
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid transcript ID",
			})
			return
		}

		transcript, err := deps.TranscriptService.GetTranscript(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, transcriptsService.ErrTranscriptNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "transcript not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load transcript",
			})
			return
		}

		segs, err := deps.TranscriptService.GetSegments(c.Request.Context(), transcript)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to decode transcript segments",
			})
			return
		}

		c.JSON(http.StatusOK, types.TranscriptResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Transcript: &types.Transcript{
				ID:               transcript.ID,
				AudioFileID:      transcript.AudioFileID,
				MeetingID:        transcript.MeetingID,
				DetectedLanguage: transcript.DetectedLanguage,
				Encrypted:        transcript.Encrypted,
				Segments:         segs,
				CreatedAt:        transcript.CreatedAt,
			},
		})
	}
}
