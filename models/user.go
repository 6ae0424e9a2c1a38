package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName     string `gorm:"size:100;not null" json:"first_name"`
	LastName      string `gorm:"size:100;not null" json:"last_name"`
	Email         string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Age           int    `gorm:"not null" json:"age"`
	Location      string `gorm:"size:255;not null" json:"location"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	ResetToken    string     `gorm:"size:255;index" json:"-"`
	ResetTokenExp *time.Time `json:"-"`
	PushEnabled   bool       `gorm:"default:true" json:"push_enabled"`
}
