package models

import (
	"gorm.io/gorm"
)

type Video struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" gorm:"not null"`
	Position    int    `json:"position" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
	Course      Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
