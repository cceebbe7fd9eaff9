package types

import "time"

// CreateMeetingRequest creates a meeting and its participant list
type CreateMeetingRequest struct {
	Title        string                     `json:"title" binding:"required"`
	Description  string                     `json:"description"`
	Language     string                     `json:"language"`
	StartTime    *time.Time                 `json:"start_time"`
	ExternalLink string                     `json:"external_link"`
	Participants []CreateParticipantRequest `json:"participants"`
}

// CreateParticipantRequest adds one attendee to a meeting
type CreateParticipantRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
}

// TranslateRequest queues a translation of a transcript
type TranslateRequest struct {
	Language string `json:"language" binding:"required"`
}

// SummarizeRequest queues a summarization of a transcript
type SummarizeRequest struct {
	Length string `json:"length"` // short|medium|long
	Tone   string `json:"tone"`   // formal|conversational
}

// ScheduleListenerRequest schedules a bot join of an external call
type ScheduleListenerRequest struct {
	MeetingID    *uint      `json:"meeting_id"`
	ExternalLink string     `json:"external_link" binding:"required"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
}

// CreateUserRequest registers an account
type CreateUserRequest struct {
	Email             string `json:"email" binding:"required,email"`
	DisplayName       string `json:"display_name"`
	PreferredLanguage string `json:"preferred_language"`
}
