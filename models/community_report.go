package models

import "gorm.io/gorm"

type CommunityReport struct {
	gorm.Model
	ProjectID   uint    `gorm:"index:idx_report_project;not null" json:"project_id"`
	UserID      uint    `gorm:"index;not null" json:"user_id"`
	ReportType  string  `gorm:"size:50;not null" json:"report_type"` // vegetation_loss | soil_erosion | water_stress | pest_disease | positive_change
	Description string  `gorm:"type:text" json:"description"`
	Severity    string  `gorm:"size:20;default:medium;index" json:"severity"` // low | medium | high | critical
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ImageURL    string  `gorm:"size:500" json:"image_url"`
	ImageLabels JSONStrings `gorm:"type:json" json:"image_labels"`
	Status      string      `gorm:"size:20;default:pending;index:idx_report_project" json:"status"` // pending | verified | resolved | invalid
}
