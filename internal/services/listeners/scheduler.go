package listeners

import (
	"context"
	"log"
	"time"

	"github.com/edenhq/meeting-api/internal/models"
)

// JoinEnqueuer defers a listener-join job by the given delay.
type JoinEnqueuer interface {
	EnqueueListenerJoin(ctx context.Context, sessionID uint, delay time.Duration) error
}

// Scheduler creates listener sessions and defers their join jobs until the
// scheduled time. Cancellation is honored only while a session is still in
// the scheduled state; the join processor re-checks status at fire time.
type Scheduler struct {
	repo     Repository
	enqueuer JoinEnqueuer
	now      func() time.Time
}

func NewScheduler(repo Repository, enqueuer JoinEnqueuer) *Scheduler {
	return &Scheduler{repo: repo, enqueuer: enqueuer, now: time.Now}
}

// Schedule persists a scheduled session and enqueues its deferred join job.
// A scheduled time in the past fires immediately.
func (s *Scheduler) Schedule(ctx context.Context, meetingID *uint, externalLink string, scheduledAt *time.Time) (*models.ListenerSession, error) {
	session := &models.ListenerSession{
		MeetingID:    meetingID,
		ExternalLink: externalLink,
		ScheduledAt:  scheduledAt,
		Status:       models.ListenerStatusScheduled,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	var delay time.Duration
	if scheduledAt != nil {
		if d := scheduledAt.Sub(s.now()); d > 0 {
			delay = d
		}
	}

	if err := s.enqueuer.EnqueueListenerJoin(ctx, session.ID, delay); err != nil {
		// The session row stays scheduled; an operator can re-trigger.
		log.Printf("[ERROR] Failed to enqueue join for listener session %d: %v", session.ID, err)
		return session, err
	}

	log.Printf("[INFO] Listener session %d scheduled, join fires in %s", session.ID, delay)
	return session, nil
}

// Cancel flips a still-scheduled session to cancelled.
func (s *Scheduler) Cancel(ctx context.Context, id uint) error {
	return s.repo.CancelIfScheduled(ctx, id)
}

// Get returns one session.
func (s *Scheduler) Get(ctx context.Context, id uint) (*models.ListenerSession, error) {
	return s.repo.GetSessionByID(ctx, id)
}

// List returns recent sessions.
func (s *Scheduler) List(ctx context.Context, limit int) ([]*models.ListenerSession, error) {
	return s.repo.ListSessions(ctx, limit)
}
