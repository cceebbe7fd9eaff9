package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edenhq/meeting-api/internal/models"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

type repository struct {
	db *gorm.DB
}

var _ Repository = (*repository)(nil)

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (r *repository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &user, nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return &user, nil
}

func (r *repository) GetUsersByEmails(ctx context.Context, emails []string) ([]*models.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var users []*models.User
	if err := r.db.WithContext(ctx).Where("email IN ?", emails).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("getting users by emails: %w", err)
	}
	return users, nil
}

func (r *repository) DeleteUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) CreateConsent(ctx context.Context, consent *models.ConsentRecord) error {
	if err := r.db.WithContext(ctx).Create(consent).Error; err != nil {
		return fmt.Errorf("creating consent record: %w", err)
	}
	return nil
}

func (r *repository) GetConsentsByUser(ctx context.Context, userID uint) ([]*models.ConsentRecord, error) {
	var consents []*models.ConsentRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&consents).Error; err != nil {
		return nil, fmt.Errorf("getting consent records: %w", err)
	}
	return consents, nil
}

func (r *repository) DeleteConsentsByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&models.ConsentRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting consent records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
