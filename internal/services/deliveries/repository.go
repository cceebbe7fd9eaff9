// Package deliveries tracks summary email sends. A delivery row is created
// pending before the SMTP attempt so a crash mid-send leaves evidence, and a
// (summary, user) pair that already reached a terminal state is never re-sent.
package deliveries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/edenhq/meeting-api/internal/models"
)

// ErrDeliveryNotFound is returned when no delivery matches the lookup.
var ErrDeliveryNotFound = errors.New("delivery not found")

// Repository provides access to email delivery records.
type Repository interface {
	// FindOrCreatePending returns the existing delivery for the given
	// (summary, user) pair, or records the given one as pending. The bool
	// reports whether a new row was created.
	FindOrCreatePending(ctx context.Context, delivery *models.EmailDelivery) (*models.EmailDelivery, bool, error)
	GetDeliveryByID(ctx context.Context, id uint) (*models.EmailDelivery, error)
	GetDeliveriesByUser(ctx context.Context, userID uint) ([]*models.EmailDelivery, error)
	MarkSent(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, reason string) error
	DeleteDeliveriesByUser(ctx context.Context, userID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

var _ Repository = (*repository)(nil)

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOrCreatePending(ctx context.Context, delivery *models.EmailDelivery) (*models.EmailDelivery, bool, error) {
	var existing models.EmailDelivery
	err := r.db.WithContext(ctx).
		Where("summary_id = ? AND user_id = ?", delivery.SummaryID, delivery.UserID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("looking up delivery: %w", err)
	}

	if delivery.Status == "" {
		delivery.Status = models.DeliveryStatusPending
	}
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, false, fmt.Errorf("creating delivery: %w", err)
	}
	return delivery, true, nil
}

func (r *repository) GetDeliveryByID(ctx context.Context, id uint) (*models.EmailDelivery, error) {
	var delivery models.EmailDelivery
	if err := r.db.WithContext(ctx).First(&delivery, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("getting delivery: %w", err)
	}
	return &delivery, nil
}

func (r *repository) GetDeliveriesByUser(ctx context.Context, userID uint) ([]*models.EmailDelivery, error) {
	var deliveries []*models.EmailDelivery
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deliveries).Error; err != nil {
		return nil, fmt.Errorf("getting deliveries by user: %w", err)
	}
	return deliveries, nil
}

func (r *repository) MarkSent(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&models.EmailDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.DeliveryStatusSent,
			"sent_at": now,
			"error":   "",
		})
	if result.Error != nil {
		return fmt.Errorf("marking delivery sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDeliveryNotFound
	}
	return nil
}

func (r *repository) MarkFailed(ctx context.Context, id uint, reason string) error {
	result := r.db.WithContext(ctx).Model(&models.EmailDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": models.DeliveryStatusFailed,
			"error":  reason,
		})
	if result.Error != nil {
		return fmt.Errorf("marking delivery failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDeliveryNotFound
	}
	return nil
}

func (r *repository) DeleteDeliveriesByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.EmailDelivery{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting deliveries by user: %w", result.Error)
	}
	return result.RowsAffected, nil
}
