package models

import "time"

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_chat_user_project;not null" json:"user_id"`
	ProjectID *uint     `gorm:"index:idx_chat_user_project" json:"project_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	Context   string    `gorm:"type:json" json:"context"`
	CreatedAt time.Time `json:"created_at"`
}
