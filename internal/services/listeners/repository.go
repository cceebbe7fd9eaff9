package listeners

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/edenhq/meeting-api/internal/models"
)

var (
	ErrSessionNotFound = errors.New("listener session not found")

	// ErrNotCancellable is returned when cancellation is requested after
	// the session has already started joining.
	ErrNotCancellable = errors.New("listener session is no longer cancellable")
)

// Repository provides access to listener sessions.
type Repository interface {
	CreateSession(ctx context.Context, session *models.ListenerSession) error
	GetSessionByID(ctx context.Context, id uint) (*models.ListenerSession, error)
	ListSessions(ctx context.Context, limit int) ([]*models.ListenerSession, error)
	UpdateStatus(ctx context.Context, id uint, status models.ListenerStatus) error
	MarkJoined(ctx context.Context, id uint, at time.Time) error
	MarkLeft(ctx context.Context, id uint, at time.Time) error

	// CancelIfScheduled flips scheduled -> cancelled atomically. It returns
	// ErrNotCancellable when the session already left the scheduled state,
	// which loses the race on purpose: a join in flight is not interrupted.
	CancelIfScheduled(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

var _ Repository = (*repository)(nil)

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSession(ctx context.Context, session *models.ListenerSession) error {
	if session.Status == "" {
		session.Status = models.ListenerStatusScheduled
	}
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("creating listener session: %w", err)
	}
	return nil
}

func (r *repository) GetSessionByID(ctx context.Context, id uint) (*models.ListenerSession, error) {
	var session models.ListenerSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("getting listener session: %w", err)
	}
	return &session, nil
}

func (r *repository) ListSessions(ctx context.Context, limit int) ([]*models.ListenerSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var sessions []*models.ListenerSession
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("listing listener sessions: %w", err)
	}
	return sessions, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status models.ListenerStatus) error {
	result := r.db.WithContext(ctx).Model(&models.ListenerSession{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("updating listener session status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repository) MarkJoined(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.ListenerSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.ListenerStatusJoined,
			"join_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("marking listener session joined: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repository) MarkLeft(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.ListenerSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.ListenerStatusLeft,
			"left_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("marking listener session left: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repository) CancelIfScheduled(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.ListenerSession{}).
		Where("id = ? AND status = ?", id, models.ListenerStatusScheduled).
		Update("status", models.ListenerStatusCancelled)
	if result.Error != nil {
		return fmt.Errorf("cancelling listener session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetSessionByID(ctx, id); err != nil {
			return err
		}
		return ErrNotCancellable
	}
	return nil
}
