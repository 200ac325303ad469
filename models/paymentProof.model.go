package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentProof is evidence of payment a student submitted against an
// approved application. It always belongs to one enrollment (created
// provisional and inaccessible on first submission) and is retained for
// audit, never deleted.
type PaymentProof struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"index;not null"`
	ProofURL     string     `json:"proof_url" gorm:"not null"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Status       string     `json:"status" gorm:"default:'PENDING'"`
	VerifiedAt   *time.Time `json:"verified_at"`
	Enrollment   Enrollment `json:"enrollment" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
}
