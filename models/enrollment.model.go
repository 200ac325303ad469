package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment is the access-granting record for a (user, course) pair.
//
// EnrollDate is the instant access was granted or last re-granted; it stays
// nil until payment is verified. A nil ExpirationDate means unlimited
// access. IsAccessible and DaysRemaining are caches derived from
// ExpirationDate and the current instant; they are recomputed before every
// access decision and must never be trusted without a recompute.
type Enrollment struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID       uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status         string     `json:"status" gorm:"default:'PENDING'"`
	EnrollDate     *time.Time `json:"enroll_date"`
	ExpirationDate *time.Time `json:"expiration_date"`
	IsAccessible   bool       `json:"is_accessible" gorm:"default:false"`
	DaysRemaining  *int       `json:"days_remaining"`
	ReminderSent   bool       `gorm:"default:false"`
	User           User       `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course         Course     `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
