package models

import (
	"gorm.io/gorm"
)

// AudioFile is the processed audio object behind a recording. The storage key
// is the idempotency key for the transcription stage: one AudioFile per key.
type AudioFile struct {
	gorm.Model
	MeetingID   *uint  `json:"meeting_id" gorm:"index"`
	StorageKey  string `json:"storage_key" gorm:"uniqueIndex;not null"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Processed   bool   `json:"processed" gorm:"default:false"`
	Meta        string `json:"meta,omitempty" gorm:"type:text"`
}

// Transcript holds the speaker-attributed segments for one audio file.
// Segments is a JSON array, possibly encrypted at rest; Encrypted is true iff
// the crypto boundary actually transformed the blob. Immutable once created.
type Transcript struct {
	gorm.Model
	AudioFileID      uint   `json:"audio_file_id" gorm:"not null;index"`
	MeetingID        *uint  `json:"meeting_id" gorm:"index"`
	Segments         string `json:"segments" gorm:"type:text;not null"`
	Encrypted        bool   `json:"encrypted" gorm:"default:false"`
	DetectedLanguage string `json:"detected_language"`
}

// TranslatedTranscript is one translation of a transcript into a target
// language. Many per transcript, one per requested language.
type TranslatedTranscript struct {
	gorm.Model
	TranscriptID   uint   `json:"transcript_id" gorm:"not null;index"`
	AudioFileID    *uint  `json:"audio_file_id"`
	MeetingID      *uint  `json:"meeting_id" gorm:"index"`
	TargetLanguage string `json:"target_language" gorm:"not null"`
	Segments       string `json:"segments" gorm:"type:text;not null"`
	Encrypted      bool   `json:"encrypted" gorm:"default:false"`
}

// Summary is a structured meeting summary derived from a transcript. Zero or
// more per transcript, one per requested length/tone combination.
type Summary struct {
	gorm.Model
	TranscriptID     *uint  `json:"transcript_id" gorm:"index"`
	MeetingID        *uint  `json:"meeting_id" gorm:"index"`
	ExecutiveSummary string `json:"executive_summary" gorm:"type:text;not null"`
	KeyPoints        string `json:"key_points" gorm:"type:text"` // JSON array
	Decisions        string `json:"decisions" gorm:"type:text"`  // JSON array
	Risks            string `json:"risks" gorm:"type:text"`      // JSON array
	Encrypted        bool   `json:"encrypted" gorm:"default:false"`
	Length           string `json:"length"` // short|medium|long
	Tone             string `json:"tone"`   // formal|conversational
}

// TableName keeps the original table name for summaries
func (Summary) TableName() string {
	return "meeting_summaries"
}

// Extraction holds the action items, decisions and risks extracted from a
// transcript, as a JSON array of items with per-item confidence.
type Extraction struct {
	gorm.Model
	TranscriptID uint   `json:"transcript_id" gorm:"not null;index"`
	MeetingID    *uint  `json:"meeting_id" gorm:"index"`
	Items        string `json:"items" gorm:"type:text;not null"` // JSON array
	Encrypted    bool   `json:"encrypted" gorm:"default:false"`
	Confidence   string `json:"confidence"`
}
