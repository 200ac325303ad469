package models

import (
	"gorm.io/gorm"
)

// BankAccount holds the institute's payment details shown to students on
// the purchase-info screen before they transfer the course fee.
type BankAccount struct {
	gorm.Model
	BankName      string `json:"bank_name" gorm:"not null"`
	AccountName   string `json:"account_name" gorm:"not null"`
	AccountNumber string `json:"account_number" gorm:"not null"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
}
