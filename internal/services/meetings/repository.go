package meetings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edenhq/meeting-api/internal/models"
)

// ErrMeetingNotFound is returned when no meeting matches the lookup.
var ErrMeetingNotFound = errors.New("meeting not found")

type repository struct {
	db *gorm.DB
}

var _ Repository = (*repository)(nil)

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("creating meeting: %w", err)
	}
	return nil
}

func (r *repository) GetMeetingByID(ctx context.Context, id uint) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		First(&meeting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("getting meeting: %w", err)
	}
	return &meeting, nil
}

func (r *repository) ListMeetings(ctx context.Context, limit, offset int) ([]*models.Meeting, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var meetings []*models.Meeting
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	return meetings, nil
}

func (r *repository) AddParticipant(ctx context.Context, participant *models.Participant) error {
	if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
		return fmt.Errorf("adding participant: %w", err)
	}
	return nil
}

func (r *repository) GetParticipants(ctx context.Context, meetingID uint) ([]*models.Participant, error) {
	var participants []*models.Participant
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		return nil, fmt.Errorf("getting participants: %w", err)
	}
	return participants, nil
}

func (r *repository) GetParticipantsByEmail(ctx context.Context, email string) ([]*models.Participant, error) {
	var participants []*models.Participant
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Find(&participants).Error; err != nil {
		return nil, fmt.Errorf("getting participants by email: %w", err)
	}
	return participants, nil
}

func (r *repository) DeleteParticipantsByEmail(ctx context.Context, email string) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().Where("email = ?", email).Delete(&models.Participant{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting participants by email: %w", result.Error)
	}
	return result.RowsAffected, nil
}
