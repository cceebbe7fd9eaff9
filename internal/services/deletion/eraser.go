// Package deletion implements GDPR-style account erasure. The cascade is
// best-effort for storage cleanup but strict about ordering: the user row is
// deleted last, only after every cleanup attempt has run.
package deletion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/edenhq/meeting-api/internal/services/deliveries"
	"github.com/edenhq/meeting-api/internal/services/meetings"
	"github.com/edenhq/meeting-api/internal/services/recordings"
	"github.com/edenhq/meeting-api/internal/services/storage"
	"github.com/edenhq/meeting-api/internal/services/users"
)

// ErrUserNotFound mirrors the users package sentinel for callers that only
// import deletion.
var ErrUserNotFound = users.ErrUserNotFound

// Report summarizes what one erasure run removed.
type Report struct {
	RecordingsDeleted     int
	StorageObjectsDeleted int
	StorageFailures       int
	ParticipantsDeleted   int64
	ConsentsDeleted       int64
	DeliveriesDeleted     int64
}

// Eraser runs the erasure cascade for one user.
type Eraser struct {
	users      users.Repository
	meetings   meetings.Repository
	recordings recordings.Repository
	deliveries deliveries.Repository
	store      storage.ObjectStore
}

func NewEraser(
	userRepo users.Repository,
	meetingRepo meetings.Repository,
	recordingRepo recordings.Repository,
	deliveryRepo deliveries.Repository,
	store storage.ObjectStore,
) *Eraser {
	return &Eraser{
		users:      userRepo,
		meetings:   meetingRepo,
		recordings: recordingRepo,
		deliveries: deliveryRepo,
		store:      store,
	}
}

// EraseUser removes every trace of a user: recordings of meetings the user
// participated in (with best-effort storage cleanup), participant rows,
// consent records, email deliveries, then the user itself. A storage failure
// is logged and counted but never aborts the cascade.
func (e *Eraser) EraseUser(ctx context.Context, userID uint) (*Report, error) {
	user, err := e.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	report := &Report{}

	participants, err := e.meetings.GetParticipantsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	seenMeetings := make(map[uint]bool)
	for _, p := range participants {
		if seenMeetings[p.MeetingID] {
			continue
		}
		seenMeetings[p.MeetingID] = true

		recs, err := e.recordings.GetRecordingsByMeeting(ctx, p.MeetingID)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			if err := e.store.Delete(ctx, rec.StorageKey); err != nil {
				report.StorageFailures++
				log.Printf("[WARN] Erasure of user %d: storage delete failed for %s: %v", userID, rec.StorageKey, err)
			} else {
				report.StorageObjectsDeleted++
			}
			if err := e.recordings.DeleteRecording(ctx, rec.ID); err != nil {
				return nil, fmt.Errorf("deleting recording %d: %w", rec.ID, err)
			}
			report.RecordingsDeleted++
		}
	}

	if report.ParticipantsDeleted, err = e.meetings.DeleteParticipantsByEmail(ctx, user.Email); err != nil {
		return nil, err
	}
	if report.ConsentsDeleted, err = e.users.DeleteConsentsByUser(ctx, userID); err != nil {
		return nil, err
	}
	if report.DeliveriesDeleted, err = e.deliveries.DeleteDeliveriesByUser(ctx, userID); err != nil {
		return nil, err
	}

	// Point of no return.
	if err := e.users.DeleteUser(ctx, userID); err != nil {
		return nil, err
	}

	log.Printf("[INFO] Erased user %d: %d recordings, %d storage objects (%d failures), %d participants, %d consents, %d deliveries",
		userID, report.RecordingsDeleted, report.StorageObjectsDeleted, report.StorageFailures,
		report.ParticipantsDeleted, report.ConsentsDeleted, report.DeliveriesDeleted)
	return report, nil
}
