package models

import (
	"gorm.io/gorm"
)

// Shared status values for applications, enrollments, payment proofs and
// certificates. Applications start PENDING; APPROVED and REJECTED are
// terminal (an admin can reopen a rejected application explicitly).
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// EnrollmentApplication is a student's request to join a course, pending
// admin review. At most one row per (user, course) pair ever exists; the
// unique index is the final arbiter against concurrent applies.
type EnrollmentApplication struct {
	gorm.Model
	UserID                      uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_application_user_course"`
	CourseID                    uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_application_user_course"`
	FirstName                   string `json:"first_name" gorm:"not null"`
	LastName                    string `json:"last_name" gorm:"not null"`
	Qualification               string `json:"qualification"`
	QualificationCertificateURL string `json:"qualification_certificate_url"`
	Experience                  string `json:"experience"`
	ContactNumber               string `json:"contact_number"`
	Status                      string `json:"status" gorm:"default:'PENDING'"`
	User                        User   `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course                      Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
