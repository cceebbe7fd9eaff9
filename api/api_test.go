package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edenhq/meeting-api/api/types"
	"github.com/edenhq/meeting-api/internal/database"
	"github.com/edenhq/meeting-api/internal/services/ai"
	"github.com/edenhq/meeting-api/internal/services/deletion"
	"github.com/edenhq/meeting-api/internal/services/deliveries"
	"github.com/edenhq/meeting-api/internal/services/insights"
	"github.com/edenhq/meeting-api/internal/services/jobs"
	"github.com/edenhq/meeting-api/internal/services/listeners"
	"github.com/edenhq/meeting-api/internal/services/meetings"
	"github.com/edenhq/meeting-api/internal/services/notifications"
	"github.com/edenhq/meeting-api/internal/services/pipeline"
	"github.com/edenhq/meeting-api/internal/services/recordings"
	"github.com/edenhq/meeting-api/internal/services/storage"
	"github.com/edenhq/meeting-api/internal/services/transcripts"
	"github.com/edenhq/meeting-api/internal/services/users"
	"github.com/edenhq/meeting-api/pkg/crypto"
)

type apiEnv struct {
	engine *gin.Engine
	deps   *types.Dependencies
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, conn.MigrateAll())
	t.Cleanup(func() { _ = conn.Close() })

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	boundary := crypto.New("")
	jobService := jobs.NewService(jobs.NewRepository(conn.DB))
	userRepo := users.NewRepository(conn.DB)
	meetingRepo := meetings.NewRepository(conn.DB)
	recordingRepo := recordings.NewRepository(conn.DB)
	deliveryRepo := deliveries.NewRepository(conn.DB)
	listenerRepo := listeners.NewRepository(conn.DB)
	transcriptService := transcripts.NewService(transcripts.NewRepository(conn.DB), boundary)
	insightService := insights.NewService(insights.NewRepository(conn.DB), boundary)
	eraser := deletion.NewEraser(userRepo, meetingRepo, recordingRepo, deliveryRepo, store)

	orch := pipeline.NewOrchestrator(pipeline.Collaborators{
		Jobs:        jobService,
		Store:       store,
		Recordings:  recordingRepo,
		Transcripts: transcriptService,
		Insights:    insightService,
		Meetings:    meetingRepo,
		Users:       userRepo,
		Deliveries:  deliveryRepo,
		Listeners:   listenerRepo,
		Eraser:      eraser,
		Sender:      notifications.ConsoleSender{},
		Transcriber: ai.NewStubTranscriber(),
		Translator:  ai.NewTagTranslator(),
		Summarizer:  ai.NewHeuristicSummarizer(),
		Extractor:   ai.NewHeuristicExtractor(),
	}, pipeline.Options{})

	deps := &types.Dependencies{
		DB:                conn,
		Orchestrator:      orch,
		MeetingRepo:       meetingRepo,
		RecordingRepo:     recordingRepo,
		UserRepo:          userRepo,
		TranscriptService: transcriptService,
		InsightService:    insightService,
		ListenerScheduler: listeners.NewScheduler(listenerRepo, orch),
		JobService:        jobService,
	}

	server := NewServer("127.0.0.1:0", nil)
	server.SetDependencies(deps)
	require.NoError(t, server.Initialize())

	return &apiEnv{engine: server.Engine(), deps: deps}
}

func (env *apiEnv) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	env := setupAPI(t)

	w := env.doJSON(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	db := body["database"].(map[string]any)
	assert.Equal(t, "healthy", db["status"])
}

func TestUnknownRouteReturns404(t *testing.T) {
	env := setupAPI(t)

	w := env.doJSON(t, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeetingLifecycle(t *testing.T) {
	env := setupAPI(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/meetings", types.CreateMeetingRequest{
		Title:    "Quarterly planning",
		Language: "en",
		Participants: []types.CreateParticipantRequest{
			{Email: "alice@example.com", DisplayName: "Alice", IsHost: true},
			{Email: "bob@example.com", DisplayName: "Bob"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	meeting := body["meeting"].(map[string]any)
	meetingID := uint(meeting["id"].(float64))
	require.NotZero(t, meetingID)
	assert.Len(t, meeting["participants"], 2)

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/meetings/%d", meetingID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/v1/meetings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = env.doJSON(t, http.MethodGet, "/api/v1/meetings/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordingUploadThroughPipeline(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	w := env.doJSON(t, http.MethodPost, "/api/v1/meetings", types.CreateMeetingRequest{
		Title: "Standup",
		Participants: []types.CreateParticipantRequest{
			{Email: "alice@example.com", DisplayName: "Alice"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	meetingID := uint(decode(t, w)["meeting"].(map[string]any)["id"].(float64))

	// Multipart upload
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("meeting_id", fmt.Sprintf("%d", meetingID)))
	part, err := mw.CreateFormFile("audio", "standup.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("We decided to ship Friday. Alice will update the roadmap."))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recordings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	recordingID := uint(decode(t, rec)["recording"].(map[string]any)["id"].(float64))

	// Drive the queued transcription stage directly.
	require.NoError(t, env.deps.Orchestrator.ProcessTranscription(ctx, recordingID, false, true))

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/recordings/%d", recordingID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	recBody := decode(t, w)["recording"].(map[string]any)
	assert.Equal(t, "processed", recBody["status"])
	require.NotNil(t, recBody["transcript_id"])
	transcriptID := uint(recBody["transcript_id"].(float64))

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d", transcriptID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	transcript := decode(t, w)["transcript"].(map[string]any)
	assert.NotEmpty(t, transcript["segments"])
	assert.Equal(t, "en", transcript["detected_language"])
}

func TestTranscriptDerivedArtifacts(t *testing.T) {
	env := setupAPI(t)
	ctx := context.Background()

	rec, err := env.deps.Orchestrator.CreateRecording(ctx, 0, "meetings/0/recordings/a.wav", "audio/wav", []byte("meeting audio"))
	require.NoError(t, err)
	require.NoError(t, env.deps.Orchestrator.ProcessTranscription(ctx, rec.ID, false, true))

	loaded, err := env.deps.RecordingRepo.GetRecordingByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.TranscriptID)
	transcriptID := *loaded.TranscriptID

	// Queue endpoints accept and acknowledge.
	w := env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/transcripts/%d/translate", transcriptID), types.TranslateRequest{Language: "de"})
	assert.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/transcripts/%d/summarize", transcriptID), types.SummarizeRequest{Length: "medium", Tone: "formal"})
	assert.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/transcripts/%d/summarize", transcriptID), types.SummarizeRequest{Length: "epic"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Run the queued stages and read the artifacts back.
	require.NoError(t, env.deps.Orchestrator.ProcessTranslation(ctx, transcriptID, "de"))
	require.NoError(t, env.deps.Orchestrator.ProcessSummarization(ctx, transcriptID, "medium", "formal"))
	require.NoError(t, env.deps.Orchestrator.ProcessExtraction(ctx, transcriptID))

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/translations", transcriptID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	translations := decode(t, w)["translations"].([]any)
	require.Len(t, translations, 1)
	first := translations[0].(map[string]any)
	assert.Equal(t, "de", first["target_language"])

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/summaries", transcriptID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	summariesBody := decode(t, w)
	require.Equal(t, float64(1), summariesBody["count"])
	summary := summariesBody["summaries"].([]any)[0].(map[string]any)
	assert.NotEmpty(t, summary["executive_summary"])
	summaryID := uint(summary["id"].(float64))

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/summaries/%d", summaryID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/transcripts/%d/extractions", transcriptID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestListenerScheduleAndCancel(t *testing.T) {
	env := setupAPI(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/listeners", types.ScheduleListenerRequest{
		ExternalLink: "https://meet.example.com/abc",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	session := decode(t, w)["session"].(map[string]any)
	sessionID := uint(session["id"].(float64))
	assert.Equal(t, "scheduled", session["status"])

	w = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/listeners/%d/cancel", sessionID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second cancel finds the session no longer cancellable.
	w = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/v1/listeners/%d/cancel", sessionID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/listeners/%d", sessionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode(t, w)["session"].(map[string]any)["status"])
}

func TestUserRegistrationAndErasure(t *testing.T) {
	env := setupAPI(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/users", types.CreateUserRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userID := uint(decode(t, w)["user"].(map[string]any)["id"].(float64))

	// Duplicate email is rejected.
	w = env.doJSON(t, http.MethodPost, "/api/v1/users", types.CreateUserRequest{
		Email: "alice@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/v1/privacy/users/%d", userID), nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	// The erasure is queued, not yet executed.
	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.deps.Orchestrator.ProcessUserDeletion(context.Background(), userID))

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", userID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordingUploadValidation(t *testing.T) {
	env := setupAPI(t)

	// Missing meeting_id
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", "a.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recordings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown meeting
	buf.Reset()
	mw = multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("meeting_id", "9999"))
	part, err = mw.CreateFormFile("audio", "a.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/recordings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidIDsReturn400(t *testing.T) {
	env := setupAPI(t)

	paths := []string{
		"/api/v1/meetings/abc",
		"/api/v1/recordings/abc",
		"/api/v1/transcripts/abc",
		"/api/v1/summaries/abc",
		"/api/v1/listeners/abc",
		"/api/v1/jobs/abc",
	}
	for _, path := range paths {
		w := env.doJSON(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := env.doJSON(t, http.MethodDelete, "/api/v1/privacy/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobStatusEndpoint(t *testing.T) {
	env := setupAPI(t)

	require.NoError(t, env.deps.Orchestrator.EnqueueExtraction(context.Background(), 1))

	w := env.doJSON(t, http.MethodGet, "/api/v1/jobs/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	job := decode(t, w)["job"].(map[string]any)
	assert.Equal(t, "extraction", job["type"])
	assert.Equal(t, "pending", job["job_status"])

	w = env.doJSON(t, http.MethodGet, "/api/v1/jobs/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
