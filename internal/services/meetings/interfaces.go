package meetings

import (
	"context"

	"github.com/edenhq/meeting-api/internal/models"
)

// Repository provides access to meetings and their participants.
type Repository interface {
	CreateMeeting(ctx context.Context, meeting *models.Meeting) error
	GetMeetingByID(ctx context.Context, id uint) (*models.Meeting, error)
	ListMeetings(ctx context.Context, limit, offset int) ([]*models.Meeting, error)

	AddParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipants(ctx context.Context, meetingID uint) ([]*models.Participant, error)
	GetParticipantsByEmail(ctx context.Context, email string) ([]*models.Participant, error)
	DeleteParticipantsByEmail(ctx context.Context, email string) (int64, error)
}
