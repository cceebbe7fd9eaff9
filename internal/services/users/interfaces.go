package users

import (
	"context"

	"github.com/edenhq/meeting-api/internal/models"
)

// Repository provides access to user accounts and their consent records.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByEmails(ctx context.Context, emails []string) ([]*models.User, error)
	DeleteUser(ctx context.Context, id uint) error

	CreateConsent(ctx context.Context, consent *models.ConsentRecord) error
	GetConsentsByUser(ctx context.Context, userID uint) ([]*models.ConsentRecord, error)
	DeleteConsentsByUser(ctx context.Context, userID uint) (int64, error)
}
