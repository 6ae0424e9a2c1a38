package models

import (
	"time"

	"gorm.io/gorm"
)

type RestorationAction struct {
	gorm.Model
	ProjectID     uint       `gorm:"index:idx_action_project;not null" json:"project_id"`
	ActionType    string     `gorm:"size:100;not null" json:"action_type"`
	Description   string     `gorm:"type:text" json:"description"`
	TargetArea    float64    `json:"target_area"`
	Status        string     `gorm:"size:20;default:planned;index:idx_action_project" json:"status"` // planned | in_progress | completed | cancelled
	Priority      string     `gorm:"size:20;default:medium;index" json:"priority"`                   // low | medium | high | urgent
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	CompletionPct int        `gorm:"default:0" json:"completion_percentage"`
	CostEstimate  float64    `json:"cost_estimate"`
	ActualCost    float64    `json:"actual_cost"`
	AssignedTo    string     `gorm:"size:255" json:"assigned_to"`
	Notes         string     `gorm:"type:text" json:"notes"`
}
