package models

import (
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title           string  `json:"title" gorm:"not null"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" gorm:"default:0"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	DifficultyLevel string  `json:"difficulty_level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Status          string  `json:"status" gorm:"default:'ACTIVE'"`             // ACTIVE, INACTIVE
	CreatedBy       uint    `json:"created_by"`
	UpdatedBy       uint    `json:"updated_by"`
	IsDeleted       bool    `gorm:"default:false"`
}
