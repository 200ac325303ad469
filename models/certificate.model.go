package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate goes PENDING on student request and APPROVED once an admin
// attaches the rendered certificate URL. Rendering itself happens outside
// this service; only the opaque URL is stored.
type Certificate struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID       uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	EnrollmentID   uint       `json:"enrollment_id" gorm:"index;not null"`
	SerialNumber   string     `json:"serial_number" gorm:"uniqueIndex;not null"`
	CertificateURL string     `json:"certificate_url"`
	Status         string     `json:"status" gorm:"default:'PENDING'"`
	IssuedAt       *time.Time `json:"issued_at"`
	User           User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course         Course     `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
