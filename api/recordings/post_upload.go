package recordings

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edenhq/meeting-api/api/types"
	meetingsService "github.com/edenhq/meeting-api/internal/services/meetings"
)

// Upload handles multipart recording uploads. The audio lands in object
// storage under a generated key and transcription is queued immediately.
func Upload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		meetingID, err := strconv.ParseUint(c.PostForm("meeting_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "missing or invalid meeting_id",
			})
			return
		}

		if _, err := deps.MeetingRepo.GetMeetingByID(c.Request.Context(), uint(meetingID)); err != nil {
			if errors.Is(err, meetingsService.ErrMeetingNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "meeting not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load meeting",
			})
			return
		}

		fileHeader, err := c.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "missing audio file",
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to open uploaded file",
			})
			return
		}
		defer file.Close()

		audio, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to read uploaded file",
			})
			return
		}
		if len(audio) == 0 {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "uploaded audio is empty",
			})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		ext := filepath.Ext(fileHeader.Filename)
		storageKey := fmt.Sprintf("meetings/%d/recordings/%s%s", meetingID, uuid.NewString(), ext)

		rec, err := deps.Orchestrator.CreateRecording(c.Request.Context(), uint(meetingID), storageKey, contentType, audio)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to store recording",
			})
			return
		}

		c.JSON(http.StatusAccepted, types.RecordingResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "transcription queued"},
			Recording:    types.FromRecording(rec),
		})
	}
}
