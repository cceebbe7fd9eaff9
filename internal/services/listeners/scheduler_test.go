package listeners

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edenhq/meeting-api/internal/models"
)

type capturedJoin struct {
	sessionID uint
	delay     time.Duration
}

type fakeEnqueuer struct {
	joins []capturedJoin
}

func (f *fakeEnqueuer) EnqueueListenerJoin(ctx context.Context, sessionID uint, delay time.Duration) error {
	f.joins = append(f.joins, capturedJoin{sessionID: sessionID, delay: delay})
	return nil
}

func setupScheduler(t *testing.T) (*Scheduler, Repository, *fakeEnqueuer) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ListenerSession{}))

	repo := NewRepository(db)
	enq := &fakeEnqueuer{}
	return NewScheduler(repo, enq), repo, enq
}

func TestScheduleComputesDelay(t *testing.T) {
	sched, _, enq := setupScheduler(t)
	ctx := context.Background()

	at := time.Now().Add(30 * time.Minute)
	session, err := sched.Schedule(ctx, nil, "https://meet.example.com/xyz", &at)
	require.NoError(t, err)
	assert.Equal(t, models.ListenerStatusScheduled, session.Status)

	require.Len(t, enq.joins, 1)
	assert.Equal(t, session.ID, enq.joins[0].sessionID)
	assert.InDelta(t, (30 * time.Minute).Seconds(), enq.joins[0].delay.Seconds(), 5)
}

func TestSchedulePastTimeFiresImmediately(t *testing.T) {
	sched, _, enq := setupScheduler(t)
	ctx := context.Background()

	at := time.Now().Add(-10 * time.Minute)
	_, err := sched.Schedule(ctx, nil, "", &at)
	require.NoError(t, err)

	require.Len(t, enq.joins, 1)
	assert.Zero(t, enq.joins[0].delay)
}

func TestCancelWhileScheduled(t *testing.T) {
	sched, repo, _ := setupScheduler(t)
	ctx := context.Background()

	at := time.Now().Add(1 * time.Hour)
	session, err := sched.Schedule(ctx, nil, "", &at)
	require.NoError(t, err)

	require.NoError(t, sched.Cancel(ctx, session.ID))

	got, err := repo.GetSessionByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListenerStatusCancelled, got.Status)
	assert.True(t, got.IsTerminal())
}

func TestCancelAfterJoiningIsRejected(t *testing.T) {
	sched, repo, _ := setupScheduler(t)
	ctx := context.Background()

	session, err := sched.Schedule(ctx, nil, "", nil)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, session.ID, models.ListenerStatusJoining))

	err = sched.Cancel(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotCancellable)

	got, err := repo.GetSessionByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListenerStatusJoining, got.Status)
}

func TestCancelMissingSession(t *testing.T) {
	sched, _, _ := setupScheduler(t)
	err := sched.Cancel(context.Background(), 999)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTransitions(t *testing.T) {
	_, repo, _ := setupScheduler(t)
	ctx := context.Background()

	session := &models.ListenerSession{Status: models.ListenerStatusScheduled}
	require.NoError(t, repo.CreateSession(ctx, session))

	require.NoError(t, repo.UpdateStatus(ctx, session.ID, models.ListenerStatusJoining))
	joined := time.Now().UTC()
	require.NoError(t, repo.MarkJoined(ctx, session.ID, joined))
	require.NoError(t, repo.MarkLeft(ctx, session.ID, joined.Add(45*time.Minute)))

	got, err := repo.GetSessionByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListenerStatusLeft, got.Status)
	assert.NotNil(t, got.JoinAt)
	assert.NotNil(t, got.LeftAt)
}
