package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.Job{}))
	return db
}

func TestClaimNextJob(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &models.Job{Type: models.JobTypeTranscription, Status: models.JobStatusPending, MaxRetries: 3}
	require.NoError(t, repo.CreateJob(ctx, job))

	claimed, err := repo.ClaimNextJob(ctx, "worker-1", []models.JobType{models.JobTypeTranscription})
	require.NoError(t, err)
	assert.Equal(t, job.ID, claimed.ID)
	assert.Equal(t, models.JobStatusProcessing, claimed.Status)
	assert.Equal(t, "worker-1", claimed.WorkerID)

	// Nothing left to claim
	_, err = repo.ClaimNextJob(ctx, "worker-2", []models.JobType{models.JobTypeTranscription})
	assert.ErrorIs(t, err, ErrNoJobsAvailable)
}

func TestClaimRespectsJobTypes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateJob(ctx, &models.Job{Type: models.JobTypeDelivery, Status: models.JobStatusPending, MaxRetries: 3}))

	_, err := repo.ClaimNextJob(ctx, "worker-1", []models.JobType{models.JobTypeTranscription})
	assert.ErrorIs(t, err, ErrNoJobsAvailable)

	claimed, err := repo.ClaimNextJob(ctx, "worker-1", []models.JobType{models.JobTypeDelivery})
	require.NoError(t, err)
	assert.Equal(t, models.JobTypeDelivery, claimed.Type)
}

func TestClaimHonorsScheduledAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	future := time.Now().UTC().Add(1 * time.Hour)
	require.NoError(t, repo.CreateJob(ctx, &models.Job{
		Type:        models.JobTypeListenerJoin,
		Status:      models.JobStatusPending,
		MaxRetries:  3,
		ScheduledAt: &future,
	}))

	// Deferred job is invisible until its scheduled time
	_, err := repo.ClaimNextJob(ctx, "worker-1", nil)
	assert.ErrorIs(t, err, ErrNoJobsAvailable)

	past := time.Now().UTC().Add(-1 * time.Minute)
	require.NoError(t, repo.CreateJob(ctx, &models.Job{
		Type:        models.JobTypeListenerJoin,
		Status:      models.JobStatusPending,
		MaxRetries:  3,
		ScheduledAt: &past,
	}))

	claimed, err := repo.ClaimNextJob(ctx, "worker-1", nil)
	require.NoError(t, err)
	assert.NotNil(t, claimed.ScheduledAt)
}

func TestClaimHonorsRetryBackoff(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &models.Job{
		Type:           models.JobTypeSummarization,
		Status:         models.JobStatusPending,
		MaxRetries:     3,
		RetryDelaySecs: 3600,
	}
	require.NoError(t, repo.CreateJob(ctx, job))

	_, err := repo.ClaimNextJob(ctx, "worker-1", nil)
	require.NoError(t, err)
	require.NoError(t, repo.FailJob(ctx, job.ID, models.ErrorTypeTransient, "collaborator down"))

	// Backoff has not elapsed
	_, err = repo.ClaimNextJob(ctx, "worker-1", nil)
	assert.ErrorIs(t, err, ErrNoJobsAvailable)

	// Zero the delay and the job becomes claimable again
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).Update("retry_delay_secs", 0).Error)

	claimed, err := repo.ClaimNextJob(ctx, "worker-1", nil)
	require.NoError(t, err)
	assert.Equal(t, job.ID, claimed.ID)
	assert.Equal(t, 1, claimed.RetryCount)
}

func TestRetryBoundIsEnforced(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &models.Job{
		Type:           models.JobTypeTranscription,
		Status:         models.JobStatusPending,
		MaxRetries:     3,
		RetryDelaySecs: 0,
	}
	require.NoError(t, repo.CreateJob(ctx, job))

	attempts := 0
	for {
		_, err := repo.ClaimNextJob(ctx, "worker-1", nil)
		if errors.Is(err, ErrNoJobsAvailable) {
			break
		}
		require.NoError(t, err)
		attempts++
		require.NoError(t, repo.FailJob(ctx, job.ID, models.ErrorTypeTransient, "always fails"))
		require.LessOrEqual(t, attempts, 10, "runaway retry loop")
	}

	assert.Equal(t, 3, attempts)

	final, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPermanentlyFailed, final.Status)
	assert.Equal(t, "always fails", final.Error)
}

func TestFatalErrorFailsPermanentlyOnFirstAttempt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &models.Job{Type: models.JobTypeTranscription, Status: models.JobStatusPending, MaxRetries: 3}
	require.NoError(t, repo.CreateJob(ctx, job))

	_, err := repo.ClaimNextJob(ctx, "worker-1", nil)
	require.NoError(t, err)
	require.NoError(t, repo.FailJob(ctx, job.ID, models.ErrorTypeFatal, "missing credentials"))

	final, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPermanentlyFailed, final.Status)

	_, err = repo.ClaimNextJob(ctx, "worker-1", nil)
	assert.ErrorIs(t, err, ErrNoJobsAvailable)
}

func TestDropJob(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	job := &models.Job{Type: models.JobTypeExtraction, Status: models.JobStatusPending, MaxRetries: 3}
	require.NoError(t, repo.CreateJob(ctx, job))

	_, err := repo.ClaimNextJob(ctx, "worker-1", nil)
	require.NoError(t, err)
	require.NoError(t, repo.DropJob(ctx, job.ID, "transcript 9 not found"))

	final, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, final.Status)
	assert.Equal(t, string(models.ErrorTypeNotFound), final.ErrorType)
	assert.True(t, final.IsTerminal())
}

func TestGetJobByTypeAndPayload(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateJob(ctx, &models.Job{
		Type:    models.JobTypeSummarization,
		Status:  models.JobStatusPending,
		Payload: models.JobPayload{"transcript_id": 7},
	}))

	found, err := repo.GetJobByTypeAndPayload(ctx, models.JobTypeSummarization, "transcript_id", "7")
	require.NoError(t, err)
	assert.Equal(t, models.JobTypeSummarization, found.Type)

	_, err = repo.GetJobByTypeAndPayload(ctx, models.JobTypeSummarization, "transcript_id", "99")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestEnqueueUniqueJob(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	first, err := svc.EnqueueJob(ctx, models.JobTypeTranscription, models.JobPayload{"recording_id": 5})
	require.NoError(t, err)

	second, err := svc.EnqueueUniqueJob(ctx, models.JobTypeTranscription, models.JobPayload{"recording_id": 5}, "recording_id")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
