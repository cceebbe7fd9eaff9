package deliveries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edenhq/meeting-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.EmailDelivery{}))
	return db
}

func pendingDelivery(summaryID uint, userID uint) *models.EmailDelivery {
	return &models.EmailDelivery{
		UserID:    userID,
		SummaryID: &summaryID,
		ToEmail:   "user@example.com",
		Subject:   "Meeting Summary: Weekly Sync",
		Body:      "Hello,\n\nSummary attached.",
	}
}

func TestFindOrCreatePending(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	first, created, err := repo.FindOrCreatePending(ctx, pendingDelivery(1, 10))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.DeliveryStatusPending, first.Status)

	// Same (summary, user) pair reuses the row
	second, created, err := repo.FindOrCreatePending(ctx, pendingDelivery(1, 10))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	// Different user gets its own row
	_, created, err = repo.FindOrCreatePending(ctx, pendingDelivery(1, 11))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestFindOrCreatePendingSkipsTerminal(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	first, _, err := repo.FindOrCreatePending(ctx, pendingDelivery(1, 10))
	require.NoError(t, err)
	require.NoError(t, repo.MarkSent(ctx, first.ID))

	// A sent delivery is returned as-is, not re-created
	existing, created, err := repo.FindOrCreatePending(ctx, pendingDelivery(1, 10))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.DeliveryStatusSent, existing.Status)
	assert.True(t, existing.IsTerminal())
}

func TestMarkSentAndFailed(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	d, _, err := repo.FindOrCreatePending(ctx, pendingDelivery(1, 10))
	require.NoError(t, err)

	require.NoError(t, repo.MarkFailed(ctx, d.ID, "smtp timeout"))
	got, err := repo.GetDeliveryByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusFailed, got.Status)
	assert.Equal(t, "smtp timeout", got.Error)
	assert.Nil(t, got.SentAt)

	require.NoError(t, repo.MarkSent(ctx, d.ID))
	got, err = repo.GetDeliveryByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusSent, got.Status)
	assert.Empty(t, got.Error)
	assert.NotNil(t, got.SentAt)
}

func TestDeleteDeliveriesByUser(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	_, _, err := repo.FindOrCreatePending(ctx, pendingDelivery(1, 10))
	require.NoError(t, err)
	_, _, err = repo.FindOrCreatePending(ctx, pendingDelivery(2, 10))
	require.NoError(t, err)
	_, _, err = repo.FindOrCreatePending(ctx, pendingDelivery(1, 11))
	require.NoError(t, err)

	deleted, err := repo.DeleteDeliveriesByUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repo.GetDeliveriesByUser(ctx, 11)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
