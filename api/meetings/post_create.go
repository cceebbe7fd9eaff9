package meetings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/internal/models"
)

// Create handles meeting creation with an optional participant list
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateMeetingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid request body: " + err.Error(),
			})
			return
		}

		language := req.Language
		if language == "" {
			language = "en"
		}

		meeting := &models.Meeting{
			Title:        req.Title,
			Description:  req.Description,
			Language:     language,
			StartTime:    req.StartTime,
			ExternalLink: req.ExternalLink,
		}

		if err := deps.MeetingRepo.CreateMeeting(c.Request.Context(), meeting); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to create meeting",
			})
			return
		}

		for _, p := range req.Participants {
			participant := &models.Participant{
				MeetingID:   meeting.ID,
				Email:       p.Email,
				DisplayName: p.DisplayName,
				IsHost:      p.IsHost,
			}
			if err := deps.MeetingRepo.AddParticipant(c.Request.Context(), participant); err != nil {
				c.JSON(http.StatusInternalServerError, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "failed to add participant " + p.Email,
				})
				return
			}
			meeting.Participants = append(meeting.Participants, *participant)
		}

		c.JSON(http.StatusCreated, types.MeetingResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Meeting:      types.FromMeeting(meeting),
		})
	}
}
