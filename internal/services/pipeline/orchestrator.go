// Package pipeline is the orchestration core: it drives uploaded recordings
// through transcription, fans out to summarization and extraction once the
// transcript is committed, and runs the downstream translation, delivery,
// listener and erasure stages. Stages are independent jobs on the durable
// queue; each stage is retryable and classifies its own failures.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/internal/services/ai"
	"github.com/edenhq/meeting-api/internal/services/deletion"
	"github.com/edenhq/meeting-api/internal/services/deliveries"
	"github.com/edenhq/meeting-api/internal/services/insights"
	"github.com/edenhq/meeting-api/internal/services/jobs"
	"github.com/edenhq/meeting-api/internal/services/listeners"
	"github.com/edenhq/meeting-api/internal/services/meetings"
	"github.com/edenhq/meeting-api/internal/services/notifications"
	"github.com/edenhq/meeting-api/internal/services/recordings"
	"github.com/edenhq/meeting-api/internal/services/storage"
	"github.com/edenhq/meeting-api/internal/services/transcripts"
	"github.com/edenhq/meeting-api/internal/services/users"
)

// Options tune stage retry policy and summarization defaults.
type Options struct {
	MaxRetries           int
	RetryDelay           time.Duration
	DeliveryRetryDelay   time.Duration
	DefaultSummaryLength string
	DefaultSummaryTone   string
}

func (o *Options) withDefaults() {
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 10 * time.Second
	}
	if o.DeliveryRetryDelay <= 0 {
		o.DeliveryRetryDelay = 30 * time.Second
	}
	if o.DefaultSummaryLength == "" {
		o.DefaultSummaryLength = ai.LengthShort
	}
	if o.DefaultSummaryTone == "" {
		o.DefaultSummaryTone = ai.ToneFormal
	}
}

// Orchestrator wires the stage collaborators together. All Enqueue methods
// are fire-and-forget from the caller's perspective: the job lands on the
// queue and a worker picks it up later, possibly on another process.
type Orchestrator struct {
	jobs        jobs.Service
	store       storage.ObjectStore
	recordings  recordings.Repository
	transcripts transcripts.Service
	insights    insights.Service
	meetings    meetings.Repository
	users       users.Repository
	deliveries  deliveries.Repository
	listeners   listeners.Repository
	eraser      *deletion.Eraser
	sender      notifications.Sender

	transcriber ai.Transcriber
	translator  ai.Translator
	summarizer  ai.Summarizer
	extractor   ai.Extractor

	opts Options
	now  func() time.Time
}

// Collaborators carries the orchestrator's dependencies.
type Collaborators struct {
	Jobs        jobs.Service
	Store       storage.ObjectStore
	Recordings  recordings.Repository
	Transcripts transcripts.Service
	Insights    insights.Service
	Meetings    meetings.Repository
	Users       users.Repository
	Deliveries  deliveries.Repository
	Listeners   listeners.Repository
	Eraser      *deletion.Eraser
	Sender      notifications.Sender

	Transcriber ai.Transcriber
	Translator  ai.Translator
	Summarizer  ai.Summarizer
	Extractor   ai.Extractor
}

func NewOrchestrator(c Collaborators, opts Options) *Orchestrator {
	opts.withDefaults()
	return &Orchestrator{
		jobs:        c.Jobs,
		store:       c.Store,
		recordings:  c.Recordings,
		transcripts: c.Transcripts,
		insights:    c.Insights,
		meetings:    c.Meetings,
		users:       c.Users,
		deliveries:  c.Deliveries,
		listeners:   c.Listeners,
		eraser:      c.Eraser,
		sender:      c.Sender,
		transcriber: c.Transcriber,
		translator:  c.Translator,
		summarizer:  c.Summarizer,
		extractor:   c.Extractor,
		opts:        opts,
		now:         time.Now,
	}
}

// --- Dispatch surface ---

func (o *Orchestrator) stageOpts(extra ...jobs.JobOption) []jobs.JobOption {
	base := []jobs.JobOption{
		jobs.WithMaxRetries(o.opts.MaxRetries),
		jobs.WithRetryDelay(o.opts.RetryDelay),
	}
	return append(base, extra...)
}

func (o *Orchestrator) EnqueueTranscription(ctx context.Context, recordingID uint, delay time.Duration) error {
	opts := o.stageOpts()
	if delay > 0 {
		opts = append(opts, jobs.WithDelay(delay))
	}
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeTranscription,
		models.JobPayload{"recording_id": recordingID}, opts...)
	return err
}

// EnqueueReprocess re-runs transcription for a recording whose audio was
// already processed, bypassing the idempotency skip.
func (o *Orchestrator) EnqueueReprocess(ctx context.Context, recordingID uint) error {
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeTranscription,
		models.JobPayload{"recording_id": recordingID, "force": true}, o.stageOpts()...)
	return err
}

func (o *Orchestrator) EnqueueTranslation(ctx context.Context, transcriptID uint, language string) error {
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeTranslation,
		models.JobPayload{"transcript_id": transcriptID, "language": language}, o.stageOpts()...)
	return err
}

func (o *Orchestrator) EnqueueSummarization(ctx context.Context, transcriptID uint, length, tone string) error {
	if length == "" {
		length = o.opts.DefaultSummaryLength
	}
	if tone == "" {
		tone = o.opts.DefaultSummaryTone
	}
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeSummarization,
		models.JobPayload{"transcript_id": transcriptID, "length": length, "tone": tone}, o.stageOpts()...)
	return err
}

func (o *Orchestrator) EnqueueExtraction(ctx context.Context, transcriptID uint) error {
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeExtraction,
		models.JobPayload{"transcript_id": transcriptID}, o.stageOpts()...)
	return err
}

func (o *Orchestrator) EnqueueDelivery(ctx context.Context, summaryID, userID uint, includeLink bool) error {
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeDelivery,
		models.JobPayload{"summary_id": summaryID, "user_id": userID, "include_link": includeLink},
		o.stageOpts(jobs.WithRetryDelay(o.opts.DeliveryRetryDelay))...)
	return err
}

func (o *Orchestrator) EnqueueListenerJoin(ctx context.Context, sessionID uint, delay time.Duration) error {
	opts := o.stageOpts()
	if delay > 0 {
		opts = append(opts, jobs.WithDelay(delay))
	}
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeListenerJoin,
		models.JobPayload{"session_id": sessionID}, opts...)
	return err
}

func (o *Orchestrator) EnqueueUserDeletion(ctx context.Context, userID uint) error {
	_, err := o.jobs.EnqueueJob(ctx, models.JobTypeUserDeletion,
		models.JobPayload{"user_id": userID}, o.stageOpts()...)
	return err
}

// --- Stages ---

// ProcessTranscription drives one recording from raw bytes to a committed
// transcript, then fans out summarization and extraction. Intermediate
// failures leave the recording in processing for the bounded retry; the
// recording is marked failed only on the final attempt or a fatal error.
// Every step after the transcript commit is idempotent, so a retry that
// finds the audio already processed reuses the transcript and re-runs the
// fan-out instead of losing it.
func (o *Orchestrator) ProcessTranscription(ctx context.Context, recordingID uint, force, finalAttempt bool) error {
	rec, err := o.recordings.GetRecordingByID(ctx, recordingID)
	if err != nil {
		if errors.Is(err, recordings.ErrRecordingNotFound) {
			return NotFound(err)
		}
		return err
	}

	if err := o.recordings.UpdateRecordingStatus(ctx, rec.ID, models.RecordingStatusProcessing); err != nil {
		return err
	}

	transcript, err := o.transcribeRecording(ctx, rec, force)
	if err != nil {
		if finalAttempt || Classify(err) == models.ErrorTypeFatal {
			if markErr := o.recordings.MarkRecordingFailed(ctx, rec.ID, err.Error()); markErr != nil {
				log.Printf("[ERROR] Recording %d: failed to record failure: %v", rec.ID, markErr)
			}
		}
		return err
	}

	if err := o.recordings.MarkRecordingProcessed(ctx, rec.ID, transcript.ID); err != nil {
		return err
	}

	// Fan-out happens strictly after the transcript commit. Unique enqueue
	// keeps a retry of this stage from duplicating pending follow-ups;
	// enqueue failures are returned so the retry re-runs the fan-out.
	if err := o.fanOutTranscript(ctx, transcript.ID); err != nil {
		return err
	}

	log.Printf("[INFO] Recording %d transcribed: transcript %d, follow-ups enqueued", rec.ID, transcript.ID)
	return nil
}

// fanOutTranscript enqueues the mandatory follow-up stages for a committed
// transcript, at most one pending job of each type per transcript.
func (o *Orchestrator) fanOutTranscript(ctx context.Context, transcriptID uint) error {
	if _, err := o.jobs.EnqueueUniqueJob(ctx, models.JobTypeSummarization,
		models.JobPayload{"transcript_id": transcriptID, "length": o.opts.DefaultSummaryLength, "tone": o.opts.DefaultSummaryTone},
		"transcript_id", o.stageOpts()...); err != nil {
		return fmt.Errorf("enqueueing summarization for transcript %d: %w", transcriptID, err)
	}
	if _, err := o.jobs.EnqueueUniqueJob(ctx, models.JobTypeExtraction,
		models.JobPayload{"transcript_id": transcriptID},
		"transcript_id", o.stageOpts()...); err != nil {
		return fmt.Errorf("enqueueing extraction for transcript %d: %w", transcriptID, err)
	}
	return nil
}

func (o *Orchestrator) transcribeRecording(ctx context.Context, rec *models.Recording, force bool) (*models.Transcript, error) {
	data, err := o.store.Download(ctx, rec.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, Fatal(fmt.Errorf("audio object %s missing: %w", rec.StorageKey, err))
		}
		return nil, fmt.Errorf("downloading audio: %w", err)
	}

	meetingID := rec.MeetingID
	audioFile, created, err := o.recordings.EnsureAudioFile(ctx, &models.AudioFile{
		MeetingID:  &meetingID,
		StorageKey: rec.StorageKey,
		SizeBytes:  int64(len(data)),
	})
	if err != nil {
		return nil, err
	}
	if !created && audioFile.Processed && !force {
		existing, err := o.transcripts.LatestTranscript(ctx, audioFile.ID)
		if err == nil {
			log.Printf("[INFO] Audio file %d already processed, reusing transcript %d", audioFile.ID, existing.ID)
			return existing, nil
		}
		if !errors.Is(err, transcripts.ErrTranscriptNotFound) {
			return nil, err
		}
		// Processed flag with no transcript on record; redo the work.
	}

	result, err := o.transcriber.Transcribe(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("transcribing audio %d: %w", audioFile.ID, err)
	}

	transcript, err := o.transcripts.StoreTranscript(ctx, audioFile.ID, audioFile.MeetingID, result.Segments, result.DetectedLanguage)
	if err != nil {
		return nil, err
	}
	if err := o.recordings.MarkAudioFileProcessed(ctx, audioFile.ID); err != nil {
		return nil, err
	}
	return transcript, nil
}

// ProcessTranslation persists one translation of a transcript.
func (o *Orchestrator) ProcessTranslation(ctx context.Context, transcriptID uint, language string) error {
	transcript, err := o.transcripts.GetTranscript(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, transcripts.ErrTranscriptNotFound) {
			return NotFound(err)
		}
		return err
	}

	segs, err := o.transcripts.GetSegments(ctx, transcript)
	if err != nil {
		return err
	}

	translated, err := o.translator.Translate(ctx, segs, language)
	if err != nil {
		return fmt.Errorf("translating transcript %d: %w", transcriptID, err)
	}

	if _, err := o.transcripts.StoreTranslation(ctx, transcript, language, translated); err != nil {
		return err
	}
	log.Printf("[INFO] Transcript %d translated to %s", transcriptID, language)
	return nil
}

// ProcessSummarization persists one summary of a transcript and fans out
// delivery jobs to every participant that resolves to a registered user.
func (o *Orchestrator) ProcessSummarization(ctx context.Context, transcriptID uint, length, tone string) error {
	transcript, err := o.transcripts.GetTranscript(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, transcripts.ErrTranscriptNotFound) {
			return NotFound(err)
		}
		return err
	}

	segs, err := o.transcripts.GetSegments(ctx, transcript)
	if err != nil {
		return err
	}

	result, err := o.summarizer.Summarize(ctx, segs, length, tone)
	if err != nil {
		return fmt.Errorf("summarizing transcript %d: %w", transcriptID, err)
	}

	summary, err := o.insights.StoreSummary(ctx, transcriptID, transcript.MeetingID, result)
	if err != nil {
		return err
	}
	log.Printf("[INFO] Transcript %d summarized: summary %d (%s/%s)", transcriptID, summary.ID, result.Length, result.Tone)

	// Delivery fan-out is best-effort: a failure here never fails the
	// summarization stage, since the summary is already committed.
	if n, err := o.FanOutSummaryDelivery(ctx, summary.ID, true); err != nil {
		log.Printf("[ERROR] Summary %d: delivery fan-out failed: %v", summary.ID, err)
	} else if n > 0 {
		log.Printf("[INFO] Summary %d: enqueued %d delivery jobs", summary.ID, n)
	}
	return nil
}

// FanOutSummaryDelivery enqueues one delivery job per meeting participant
// that matches a registered user. Unresolved participants are skipped.
// Returns the number of jobs enqueued.
func (o *Orchestrator) FanOutSummaryDelivery(ctx context.Context, summaryID uint, includeLink bool) (int, error) {
	summary, err := o.insights.GetSummary(ctx, summaryID)
	if err != nil {
		return 0, err
	}
	if summary.MeetingID == nil {
		return 0, nil
	}

	participants, err := o.meetings.GetParticipants(ctx, *summary.MeetingID)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, p := range participants {
		user, err := o.users.GetUserByEmail(ctx, p.Email)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				continue
			}
			return enqueued, err
		}
		if err := o.EnqueueDelivery(ctx, summaryID, user.ID, includeLink); err != nil {
			return enqueued, err
		}
		enqueued++
	}
	return enqueued, nil
}

// ProcessExtraction persists the extracted facts for a transcript.
func (o *Orchestrator) ProcessExtraction(ctx context.Context, transcriptID uint) error {
	transcript, err := o.transcripts.GetTranscript(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, transcripts.ErrTranscriptNotFound) {
			return NotFound(err)
		}
		return err
	}

	segs, err := o.transcripts.GetSegments(ctx, transcript)
	if err != nil {
		return err
	}

	result, err := o.extractor.Extract(ctx, segs)
	if err != nil {
		return fmt.Errorf("extracting from transcript %d: %w", transcriptID, err)
	}

	extraction, err := o.insights.StoreExtraction(ctx, transcriptID, transcript.MeetingID, result)
	if err != nil {
		return err
	}
	log.Printf("[INFO] Transcript %d extracted: extraction %d with %d items", transcriptID, extraction.ID, len(result.Items))
	return nil
}

// ProcessDelivery sends one summary email to one user. The delivery row is
// recorded pending before the send; a retry of the stage reuses that row
// instead of creating a duplicate, and an already-sent row is never re-sent.
func (o *Orchestrator) ProcessDelivery(ctx context.Context, summaryID, userID uint, includeLink bool) error {
	summary, err := o.insights.GetSummary(ctx, summaryID)
	if err != nil {
		if errors.Is(err, insights.ErrSummaryNotFound) {
			return NotFound(err)
		}
		return err
	}
	user, err := o.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return NotFound(err)
		}
		return err
	}

	decoded, err := o.insights.DecodeSummary(ctx, summary)
	if err != nil {
		return err
	}

	meetingTitle := "Meeting"
	if summary.MeetingID != nil {
		if meeting, err := o.meetings.GetMeetingByID(ctx, *summary.MeetingID); err == nil {
			meetingTitle = meeting.Title
		}
	}

	link := ""
	if includeLink && summary.TranscriptID != nil {
		link = fmt.Sprintf("/api/v1/transcripts/%d", *summary.TranscriptID)
	}

	subject, body := notifications.FormatSummaryEmail(user.DisplayName, user.Email, meetingTitle, decoded, link)

	delivery, _, err := o.deliveries.FindOrCreatePending(ctx, &models.EmailDelivery{
		UserID:    userID,
		SummaryID: &summary.ID,
		ToEmail:   user.Email,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return err
	}
	if delivery.Status == models.DeliveryStatusSent {
		log.Printf("[INFO] Delivery %d already sent, skipping", delivery.ID)
		return nil
	}

	if err := o.sender.Send(ctx, user.Email, subject, body); err != nil {
		if markErr := o.deliveries.MarkFailed(ctx, delivery.ID, err.Error()); markErr != nil {
			log.Printf("[ERROR] Delivery %d: failed to record failure: %v", delivery.ID, markErr)
		}
		return fmt.Errorf("sending summary %d to user %d: %w", summaryID, userID, err)
	}

	if err := o.deliveries.MarkSent(ctx, delivery.ID); err != nil {
		return err
	}
	log.Printf("[INFO] Summary %d delivered to %s", summaryID, user.Email)
	return nil
}

// ProcessListenerJoin runs the simulated bot join flow. Each transition is
// committed before the next begins; a cancelled session is skipped entirely.
func (o *Orchestrator) ProcessListenerJoin(ctx context.Context, sessionID uint) error {
	session, err := o.listeners.GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, listeners.ErrSessionNotFound) {
			return NotFound(err)
		}
		return err
	}
	if session.Status == models.ListenerStatusCancelled {
		log.Printf("[INFO] Listener session %d cancelled, skipping join", sessionID)
		return nil
	}
	if session.IsTerminal() {
		log.Printf("[INFO] Listener session %d already %s, skipping", sessionID, session.Status)
		return nil
	}

	// A failed joining commit leaves the session scheduled: failed is only
	// reachable once joining has been persisted, and the job retry
	// re-attempts from scheduled.
	if err := o.listeners.UpdateStatus(ctx, sessionID, models.ListenerStatusJoining); err != nil {
		return err
	}
	if err := o.listeners.MarkJoined(ctx, sessionID, o.now().UTC()); err != nil {
		return o.failListener(ctx, sessionID, err)
	}
	if err := o.listeners.MarkLeft(ctx, sessionID, o.now().UTC()); err != nil {
		return o.failListener(ctx, sessionID, err)
	}
	log.Printf("[INFO] Listener session %d completed join flow", sessionID)
	return nil
}

func (o *Orchestrator) failListener(ctx context.Context, sessionID uint, cause error) error {
	if err := o.listeners.UpdateStatus(ctx, sessionID, models.ListenerStatusFailed); err != nil {
		log.Printf("[ERROR] Listener session %d: failed to record failure: %v", sessionID, err)
	}
	return cause
}

// ProcessUserDeletion runs the erasure cascade for one user.
func (o *Orchestrator) ProcessUserDeletion(ctx context.Context, userID uint) error {
	if _, err := o.eraser.EraseUser(ctx, userID); err != nil {
		if errors.Is(err, deletion.ErrUserNotFound) {
			return NotFound(err)
		}
		return err
	}
	return nil
}

// CreateRecording stores the uploaded audio and registers the recording row,
// then enqueues transcription. This is the upload-time entry point used by
// the HTTP layer.
func (o *Orchestrator) CreateRecording(ctx context.Context, meetingID uint, storageKey, contentType string, audio []byte) (*models.Recording, error) {
	if err := o.store.Upload(ctx, storageKey, bytes.NewReader(audio), contentType); err != nil {
		return nil, err
	}

	rec := &models.Recording{
		MeetingID:  meetingID,
		StorageKey: storageKey,
	}
	if err := o.recordings.CreateRecording(ctx, rec); err != nil {
		return nil, err
	}

	if err := o.EnqueueTranscription(ctx, rec.ID, 0); err != nil {
		return nil, err
	}
	return rec, nil
}
