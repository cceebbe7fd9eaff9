package models

import (
	"time"

	"gorm.io/gorm"
)

// DeliveryStatus is the lifecycle of one summary email. A delivery is created
// pending before the send attempt, so a crash mid-send is visible as a stuck
// pending row rather than a silently lost email.
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
)

// EmailDelivery records one (summary, user) email send attempt
type EmailDelivery struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	SummaryID *uint          `json:"summary_id" gorm:"index"`
	ToEmail   string         `json:"to_email" gorm:"not null"`
	Subject   string         `json:"subject" gorm:"not null"`
	Body      string         `json:"body" gorm:"type:text;not null"`
	Status    DeliveryStatus `json:"status" gorm:"default:'pending'"`
	Error     string         `json:"error,omitempty" gorm:"type:text"`
	SentAt    *time.Time     `json:"sent_at"`
}

// IsTerminal reports whether the delivery reached a final state
func (d *EmailDelivery) IsTerminal() bool {
	return d.Status == DeliveryStatusSent || d.Status == DeliveryStatusFailed
}

// TableName specifies the table name for GORM
func (EmailDelivery) TableName() string {
	return "email_deliveries"
}
