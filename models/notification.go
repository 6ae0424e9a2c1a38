package models

import "time"

type Notification struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	Type       string     `gorm:"size:50;not null" json:"type"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	Icon       string     `gorm:"size:50" json:"icon"`
	Color      string     `gorm:"size:20" json:"color"`
	Priority   string     `gorm:"size:10;default:medium" json:"priority"` // low | medium | high
	Link       string     `gorm:"size:500" json:"link"`
	ProjectID  *uint      `gorm:"index" json:"project_id"`
	IsRead     bool       `gorm:"default:false;index" json:"is_read"`
	IsArchived bool       `gorm:"default:false" json:"is_archived"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	ReadAt     *time.Time `json:"read_at"`
}

// NotificationPreference holds per-type opt-outs, one row per user,
// created lazily with everything but progress_updated enabled.
type NotificationPreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Email     bool      `gorm:"default:true" json:"email_notifications"`
	Push      bool      `gorm:"default:true" json:"push_notifications"`
	ProjectCreated   bool `gorm:"default:true" json:"project_created"`
	ProjectUpdated   bool `gorm:"default:true" json:"project_updated"`
	StatusChanged    bool `gorm:"default:true" json:"status_changed"`
	ProjectCompleted bool `gorm:"default:true" json:"project_completed"`
	ProgressUpdated  bool `gorm:"default:false" json:"progress_updated"`
	AnalysisComplete bool `gorm:"default:true" json:"analysis_complete"`
	MilestoneReached bool `gorm:"default:true" json:"milestone_reached"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
