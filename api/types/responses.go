package types

import (
	"time"

	"github.com/edenhq/meeting-api/internal/models"
	"github.com/edenhq/meeting-api/internal/services/ai"
	"github.com/edenhq/meeting-api/pkg/segments"
)

// Status constants for API responses
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusQueued = "queued"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is returned for all error outcomes
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// MeetingResponse for a single meeting with its participants
type MeetingResponse struct {
	BaseResponse
	Meeting *Meeting `json:"meeting"`
}

// MeetingsResponse for meeting lists
type MeetingsResponse struct {
	BaseResponse
	Meetings []Meeting `json:"meetings"`
	Count    int       `json:"count"`
}

// Meeting is the API shape of a meeting
type Meeting struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Language     string        `json:"language"`
	StartTime    *time.Time    `json:"start_time,omitempty"`
	ExternalLink string        `json:"external_link,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Participant is the API shape of a meeting participant
type Participant struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	IsHost      bool   `json:"is_host,omitempty"`
}

// RecordingResponse for a single recording
type RecordingResponse struct {
	BaseResponse
	Recording *Recording `json:"recording"`
}

// Recording is the API shape of an uploaded recording
type Recording struct {
	ID              uint      `json:"id"`
	MeetingID       uint      `json:"meeting_id"`
	StorageKey      string    `json:"storage_key"`
	Status          string    `json:"status"`
	Processed       bool      `json:"processed"`
	TranscriptID    *uint     `json:"transcript_id,omitempty"`
	ProcessingError string    `json:"processing_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// TranscriptResponse carries a transcript with decrypted segments
type TranscriptResponse struct {
	BaseResponse
	Transcript *Transcript `json:"transcript"`
}

// Transcript is the API shape of a transcript; Segments are always returned
// in the clear regardless of how they are stored.
type Transcript struct {
	ID               uint               `json:"id"`
	AudioFileID      uint               `json:"audio_file_id"`
	MeetingID        *uint              `json:"meeting_id,omitempty"`
	DetectedLanguage string             `json:"detected_language,omitempty"`
	Encrypted        bool               `json:"encrypted"`
	Segments         []segments.Segment `json:"segments"`
	CreatedAt        time.Time          `json:"created_at"`
}

// TranslationsResponse lists the translations available for a transcript
type TranslationsResponse struct {
	BaseResponse
	TranscriptID uint          `json:"transcript_id"`
	Translations []Translation `json:"translations"`
}

// Translation is the API shape of a translated transcript
type Translation struct {
	ID             uint               `json:"id"`
	TargetLanguage string             `json:"target_language"`
	Segments       []segments.Segment `json:"segments"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SummaryResponse carries one decoded summary
type SummaryResponse struct {
	BaseResponse
	Summary *Summary `json:"summary"`
}

// Summary is the API shape of a decoded meeting summary
type Summary struct {
	ID               uint      `json:"id"`
	TranscriptID     *uint     `json:"transcript_id,omitempty"`
	MeetingID        *uint     `json:"meeting_id,omitempty"`
	ExecutiveSummary string    `json:"executive_summary"`
	KeyPoints        []string  `json:"key_points"`
	Decisions        []string  `json:"decisions"`
	Risks            []string  `json:"risks"`
	Length           string    `json:"length"`
	Tone             string    `json:"tone"`
	CreatedAt        time.Time `json:"created_at"`
}

// ExtractionResponse carries one decoded extraction
type ExtractionResponse struct {
	BaseResponse
	Extraction *Extraction `json:"extraction"`
}

// Extraction is the API shape of decoded extraction results
type Extraction struct {
	ID                uint                `json:"id"`
	TranscriptID      uint                `json:"transcript_id"`
	Items             []ai.ExtractionItem `json:"items"`
	OverallConfidence float64             `json:"overall_confidence"`
	ExtractionStatus  string              `json:"extraction_status"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ListenerResponse for a single listener session
type ListenerResponse struct {
	BaseResponse
	Session *ListenerSession `json:"session"`
}

// ListenerSession is the API shape of a bot-listener session
type ListenerSession struct {
	ID           uint       `json:"id"`
	MeetingID    *uint      `json:"meeting_id,omitempty"`
	ExternalLink string     `json:"external_link"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	JoinAt       *time.Time `json:"join_at,omitempty"`
	LeftAt       *time.Time `json:"left_at,omitempty"`
	Status       string     `json:"status"`
}

// QueuedResponse acknowledges an asynchronous operation
type QueuedResponse struct {
	BaseResponse
	JobType string `json:"job_type,omitempty"`
}

// DeliveryFanOutResponse reports how many deliveries were enqueued
type DeliveryFanOutResponse struct {
	BaseResponse
	Enqueued int `json:"enqueued"`
}

// UserResponse for a single user
type UserResponse struct {
	BaseResponse
	User *User `json:"user"`
}

// User is the API shape of an account
type User struct {
	ID                uint   `json:"id"`
	Email             string `json:"email"`
	DisplayName       string `json:"display_name,omitempty"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}

// FromMeeting converts a model meeting to its API shape
func FromMeeting(m *models.Meeting) *Meeting {
	out := &Meeting{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Language:     m.Language,
		StartTime:    m.StartTime,
		ExternalLink: m.ExternalLink,
		CreatedAt:    m.CreatedAt,
	}
	for _, p := range m.Participants {
		out.Participants = append(out.Participants, Participant{
			Email:       p.Email,
			DisplayName: p.DisplayName,
			IsHost:      p.IsHost,
		})
	}
	return out
}

// FromRecording converts a model recording to its API shape
func FromRecording(r *models.Recording) *Recording {
	return &Recording{
		ID:              r.ID,
		MeetingID:       r.MeetingID,
		StorageKey:      r.StorageKey,
		Status:          string(r.Status),
		Processed:       r.Processed,
		TranscriptID:    r.TranscriptID,
		ProcessingError: r.ProcessingError,
		CreatedAt:       r.CreatedAt,
	}
}

// FromListenerSession converts a model session to its API shape
func FromListenerSession(s *models.ListenerSession) *ListenerSession {
	return &ListenerSession{
		ID:           s.ID,
		MeetingID:    s.MeetingID,
		ExternalLink: s.ExternalLink,
		ScheduledAt:  s.ScheduledAt,
		JoinAt:       s.JoinAt,
		LeftAt:       s.LeftAt,
		Status:       string(s.Status),
	}
}

// FromUser converts a model user to its API shape
func FromUser(u *models.User) *User {
	return &User{
		ID:                u.ID,
		Email:             u.Email,
		DisplayName:       u.DisplayName,
		PreferredLanguage: u.PreferredLanguage,
	}
}
