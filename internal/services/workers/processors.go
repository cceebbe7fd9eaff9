package workers

import (
	"context"
	"fmt"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/internal/services/pipeline"
)

// Stage processors are thin adapters from queued jobs to orchestrator
// stages: each one reads its payload, calls the stage, and lets the worker
// translate the returned error into a queue outcome.

// TranscriptionProcessor handles transcription jobs
type TranscriptionProcessor struct {
	orch *pipeline.Orchestrator
}

func NewTranscriptionProcessor(orch *pipeline.Orchestrator) *TranscriptionProcessor {
	return &TranscriptionProcessor{orch: orch}
}

func (p *TranscriptionProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeTranscription
}

func (p *TranscriptionProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	recordingID, ok := job.GetPayloadUint("recording_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing recording_id", job.ID))
	}
	force, _ := job.GetPayloadBool("force")
	finalAttempt := job.RetryCount+1 >= job.MaxRetries
	return p.orch.ProcessTranscription(ctx, recordingID, force, finalAttempt)
}

// TranslationProcessor handles translation jobs
type TranslationProcessor struct {
	orch *pipeline.Orchestrator
}

func NewTranslationProcessor(orch *pipeline.Orchestrator) *TranslationProcessor {
	return &TranslationProcessor{orch: orch}
}

func (p *TranslationProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeTranslation
}

func (p *TranslationProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	transcriptID, ok := job.GetPayloadUint("transcript_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing transcript_id", job.ID))
	}
	language, ok := job.GetPayloadString("language")
	if !ok || language == "" {
		return pipeline.Fatal(fmt.Errorf("job %d: missing language", job.ID))
	}
	return p.orch.ProcessTranslation(ctx, transcriptID, language)
}

// SummarizationProcessor handles summarization jobs
type SummarizationProcessor struct {
	orch *pipeline.Orchestrator
}

func NewSummarizationProcessor(orch *pipeline.Orchestrator) *SummarizationProcessor {
	return &SummarizationProcessor{orch: orch}
}

func (p *SummarizationProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeSummarization
}

func (p *SummarizationProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	transcriptID, ok := job.GetPayloadUint("transcript_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing transcript_id", job.ID))
	}
	length, _ := job.GetPayloadString("length")
	tone, _ := job.GetPayloadString("tone")
	return p.orch.ProcessSummarization(ctx, transcriptID, length, tone)
}

// ExtractionProcessor handles extraction jobs
type ExtractionProcessor struct {
	orch *pipeline.Orchestrator
}

func NewExtractionProcessor(orch *pipeline.Orchestrator) *ExtractionProcessor {
	return &ExtractionProcessor{orch: orch}
}

func (p *ExtractionProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeExtraction
}

func (p *ExtractionProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	transcriptID, ok := job.GetPayloadUint("transcript_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing transcript_id", job.ID))
	}
	return p.orch.ProcessExtraction(ctx, transcriptID)
}

// DeliveryProcessor handles summary email delivery jobs
type DeliveryProcessor struct {
	orch *pipeline.Orchestrator
}

func NewDeliveryProcessor(orch *pipeline.Orchestrator) *DeliveryProcessor {
	return &DeliveryProcessor{orch: orch}
}

func (p *DeliveryProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeDelivery
}

func (p *DeliveryProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	summaryID, ok := job.GetPayloadUint("summary_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing summary_id", job.ID))
	}
	userID, ok := job.GetPayloadUint("user_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing user_id", job.ID))
	}
	includeLink, _ := job.GetPayloadBool("include_link")
	return p.orch.ProcessDelivery(ctx, summaryID, userID, includeLink)
}

// ListenerJoinProcessor handles deferred listener join jobs
type ListenerJoinProcessor struct {
	orch *pipeline.Orchestrator
}

func NewListenerJoinProcessor(orch *pipeline.Orchestrator) *ListenerJoinProcessor {
	return &ListenerJoinProcessor{orch: orch}
}

func (p *ListenerJoinProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeListenerJoin
}

func (p *ListenerJoinProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	sessionID, ok := job.GetPayloadUint("session_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing session_id", job.ID))
	}
	return p.orch.ProcessListenerJoin(ctx, sessionID)
}

// UserDeletionProcessor handles account erasure jobs
type UserDeletionProcessor struct {
	orch *pipeline.Orchestrator
}

func NewUserDeletionProcessor(orch *pipeline.Orchestrator) *UserDeletionProcessor {
	return &UserDeletionProcessor{orch: orch}
}

func (p *UserDeletionProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeUserDeletion
}

func (p *UserDeletionProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	userID, ok := job.GetPayloadUint("user_id")
	if !ok {
		return pipeline.Fatal(fmt.Errorf("job %d: missing user_id", job.ID))
	}
	return p.orch.ProcessUserDeletion(ctx, userID)
}

// RegisterAll registers one processor per stage with the pool.
func RegisterAll(pool *WorkerPool, orch *pipeline.Orchestrator) {
	pool.RegisterProcessor(NewTranscriptionProcessor(orch))
	pool.RegisterProcessor(NewTranslationProcessor(orch))
	pool.RegisterProcessor(NewSummarizationProcessor(orch))
	pool.RegisterProcessor(NewExtractionProcessor(orch))
	pool.RegisterProcessor(NewDeliveryProcessor(orch))
	pool.RegisterProcessor(NewListenerJoinProcessor(orch))
	pool.RegisterProcessor(NewUserDeletionProcessor(orch))
}
