package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification event types.
const (
	EventApplicationSubmitted  = "application_submitted"
	EventApplicationApproved   = "application_approved"
	EventApplicationRejected   = "application_rejected"
	EventEnrollmentApproved    = "enrollment_approved"
	EventEnrollmentExpiring    = "enrollment_expiring"
	EventPaymentProofSubmitted = "payment_proof_submitted"
)

// Notification is written in the same transaction as the state transition
// it reports, exactly once per transition.
type Notification struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CourseID  uint      `json:"course_id" gorm:"index;not null"`
	EventType string    `json:"event_type" gorm:"not null"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
}
