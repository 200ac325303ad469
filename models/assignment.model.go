package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsDeleted   bool       `gorm:"default:false"`
	Course      Course     `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

type AssignmentSubmission struct {
	gorm.Model
	AssignmentID uint       `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_user"`
	UserID       uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_submission_assignment_user"`
	FileURL      string     `json:"file_url" gorm:"not null"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Grade        *float64   `json:"grade"`
	Feedback     string     `json:"feedback"`
	Assignment   Assignment `json:"-" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	User         User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
