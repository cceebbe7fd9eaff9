package types

import (
	"github.com/edenhq/meeting-api/internal/database"
	"github.com/edenhq/meeting-api/internal/services/insights"
	"github.com/edenhq/meeting-api/internal/services/jobs"
	"github.com/edenhq/meeting-api/internal/services/listeners"
	"github.com/edenhq/meeting-api/internal/services/meetings"
	"github.com/edenhq/meeting-api/internal/services/pipeline"
	"github.com/edenhq/meeting-api/internal/services/recordings"
	"github.com/edenhq/meeting-api/internal/services/transcripts"
	"github.com/edenhq/meeting-api/internal/services/users"
	"github.com/edenhq/meeting-api/internal/services/workers"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	Orchestrator      *pipeline.Orchestrator
	MeetingRepo       meetings.Repository
	RecordingRepo     recordings.Repository
	UserRepo          users.Repository
	TranscriptService transcripts.Service
	InsightService    insights.Service
	ListenerScheduler *listeners.Scheduler
	JobService        jobs.Service
	WorkerPool        *workers.WorkerPool
}
