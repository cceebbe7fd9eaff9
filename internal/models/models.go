package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account
type User struct {
	gorm.Model
	Email             string `json:"email" gorm:"uniqueIndex;not null"`
	DisplayName       string `json:"display_name"`
	PasswordHash      string `json:"-"`
	IsActive          bool   `json:"is_active" gorm:"default:true"`
	PreferredLanguage string `json:"preferred_language"`
}

// Meeting is the aggregate that owns recordings and their derived artifacts
type Meeting struct {
	gorm.Model
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description" gorm:"type:text"`
	Language     string     `json:"language" gorm:"default:'en'"`
	StartTime    *time.Time `json:"start_time"`
	OrganizerID  *uint      `json:"organizer_id" gorm:"index"`
	ExternalLink string     `json:"external_link"`

	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:MeetingID"`
	Recordings   []Recording   `json:"recordings,omitempty" gorm:"foreignKey:MeetingID"`
}

// Participant is an attendee of a meeting, referenced by email. A participant
// may or may not resolve to a registered User.
type Participant struct {
	gorm.Model
	MeetingID   uint   `json:"meeting_id" gorm:"not null;index"`
	Email       string `json:"email" gorm:"not null;index"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host" gorm:"default:false"`
}

// RecordingStatus tracks the recording-level pipeline lifecycle, separate from
// AudioFile.Processed.
type RecordingStatus string

const (
	RecordingStatusUploaded   RecordingStatus = "uploaded"
	RecordingStatusProcessing RecordingStatus = "processing"
	RecordingStatusProcessed  RecordingStatus = "processed"
	RecordingStatusFailed     RecordingStatus = "failed"
)

// Recording represents one uploaded meeting recording
type Recording struct {
	gorm.Model
	MeetingID       uint            `json:"meeting_id" gorm:"not null;index"`
	StorageKey      string          `json:"storage_key" gorm:"not null;index"`
	DurationSeconds *int            `json:"duration_seconds"`
	Processed       bool            `json:"processed" gorm:"default:false"`
	Status          RecordingStatus `json:"status" gorm:"column:processing_status;default:'uploaded'"`
	ProcessingError string          `json:"processing_error,omitempty" gorm:"type:text"`
	TranscriptID    *uint           `json:"transcript_id"`
}

// ConsentRecord captures a participant's consent to being recorded
type ConsentRecord struct {
	gorm.Model
	UserID       *uint  `json:"user_id" gorm:"index"`
	MeetingID    *uint  `json:"meeting_id" gorm:"index"`
	RecordingID  *uint  `json:"recording_id"`
	ConsentGiven bool   `json:"consent_given" gorm:"not null;default:false"`
	Method       string `json:"method"` // web, checkbox, spoken
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
	Details      string `json:"details" gorm:"type:text"`
}
