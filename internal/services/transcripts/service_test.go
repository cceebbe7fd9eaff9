package transcripts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/pkg/crypto"
	"github.com/edenhq/meeting-api/pkg/segments"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Transcript{}, &models.TranslatedTranscript{}))
	return db
}

var testSegments = []segments.Segment{
	{Speaker: "A", Start: 0, End: 3, Text: "We decided to ship Friday.", DetectedLanguage: "en"},
	{Speaker: "B", Start: 3, End: 5, Text: "Alice will update the runbook.", DetectedLanguage: "en"},
}

func TestStoreTranscriptEncrypted(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), crypto.New("test-secret"))
	ctx := context.Background()

	transcript, err := svc.StoreTranscript(ctx, 1, nil, testSegments, "en")
	require.NoError(t, err)
	assert.True(t, transcript.Encrypted)
	assert.NotContains(t, transcript.Segments, "ship Friday")

	got, err := svc.GetSegments(ctx, transcript)
	require.NoError(t, err)
	assert.Equal(t, testSegments, got)
}

func TestStoreTranscriptUnencryptedWithoutKey(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), crypto.New(""))
	ctx := context.Background()

	transcript, err := svc.StoreTranscript(ctx, 1, nil, testSegments, "en")
	require.NoError(t, err)
	assert.False(t, transcript.Encrypted)
	assert.Contains(t, transcript.Segments, "ship Friday")

	got, err := svc.GetSegments(ctx, transcript)
	require.NoError(t, err)
	assert.Equal(t, testSegments, got)
}

func TestGetSegmentsPlaintextFallback(t *testing.T) {
	// Blob stored before a key was configured, read with a key present.
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	blob, err := segments.Encode(testSegments)
	require.NoError(t, err)
	transcript := &models.Transcript{AudioFileID: 1, Segments: blob, Encrypted: false}
	require.NoError(t, repo.CreateTranscript(ctx, transcript))

	svc := NewService(repo, crypto.New("key-configured-later"))
	got, err := svc.GetSegments(ctx, transcript)
	require.NoError(t, err)
	assert.Equal(t, testSegments, got)
}

func TestGetSegmentsGarbageBlob(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), crypto.New("test-secret"))

	transcript := &models.Transcript{Segments: "not json, not a token"}
	_, err := svc.GetSegments(context.Background(), transcript)
	assert.Error(t, err)
}

func TestStoreTranslation(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), crypto.New("test-secret"))
	ctx := context.Background()

	transcript, err := svc.StoreTranscript(ctx, 1, nil, testSegments, "en")
	require.NoError(t, err)

	translated := make([]segments.Segment, len(testSegments))
	copy(translated, testSegments)
	for i := range translated {
		translated[i].TranslatedText = translated[i].Text + " [de]"
	}

	translation, err := svc.StoreTranslation(ctx, transcript, "de", translated)
	require.NoError(t, err)
	assert.True(t, translation.Encrypted)
	assert.Equal(t, "de", translation.TargetLanguage)

	all, err := svc.GetTranslations(ctx, transcript.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, translation.ID, all[0].ID)
}

func TestDeleteTranscriptCascadesTranslations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, crypto.New(""))
	ctx := context.Background()

	transcript, err := svc.StoreTranscript(ctx, 1, nil, testSegments, "en")
	require.NoError(t, err)
	_, err = svc.StoreTranslation(ctx, transcript, "fr", testSegments)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTranscript(ctx, transcript.ID))

	_, err = repo.GetTranscriptByID(ctx, transcript.ID)
	assert.ErrorIs(t, err, ErrTranscriptNotFound)

	var count int64
	require.NoError(t, db.Model(&models.TranslatedTranscript{}).Count(&count).Error)
	assert.Zero(t, count)

	// Deleting again is harmless
	assert.NoError(t, repo.DeleteTranscript(ctx, transcript.ID))
}
