package models

import (
	"time"

	"gorm.io/gorm"
)

// ListenerStatus is the state machine for a bot-listener session:
// scheduled -> joining -> joined -> left, with cancelled reachable from
// scheduled and failed reachable from joining/joined. Transitions are
// monotonic and each one is persisted before the next begins.
type ListenerStatus string

const (
	ListenerStatusScheduled ListenerStatus = "scheduled"
	ListenerStatusJoining   ListenerStatus = "joining"
	ListenerStatusJoined    ListenerStatus = "joined"
	ListenerStatusLeft      ListenerStatus = "left"
	ListenerStatusCancelled ListenerStatus = "cancelled"
	ListenerStatusFailed    ListenerStatus = "failed"
)

// ListenerSession represents one scheduled bot join of an external call
type ListenerSession struct {
	gorm.Model
	MeetingID     *uint          `json:"meeting_id" gorm:"index"`
	ExternalLink  string         `json:"external_link"`
	ScheduledAt   *time.Time     `json:"scheduled_at"`
	JoinAt        *time.Time     `json:"join_at"`
	LeftAt        *time.Time     `json:"left_at"`
	Status        ListenerStatus `json:"status" gorm:"default:'scheduled'"`
	ConsentRecord string         `json:"consent_record,omitempty" gorm:"type:text"`
}

// IsTerminal reports whether the session can transition no further
func (s *ListenerSession) IsTerminal() bool {
	return s.Status == ListenerStatusLeft ||
		s.Status == ListenerStatusCancelled ||
		s.Status == ListenerStatusFailed
}

// TableName specifies the table name for GORM
func (ListenerSession) TableName() string {
	return "listener_sessions"
}
