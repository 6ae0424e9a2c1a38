package models

import (
	"time"

	"gorm.io/gorm"
)

// Project status lifecycle. Progress updates may promote a project to
// active or completed but never demote it automatically.
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusPaused    = "paused"
)

// Land degradation levels produced by the analysis service.
const (
	DegradationMinimal  = "minimal"
	DegradationModerate = "moderate"
	DegradationSevere   = "severe"
	DegradationCritical = "critical"
)

type Project struct {
	gorm.Model
	UserID      uint    `gorm:"index;not null" json:"user_id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	ProjectType string  `gorm:"size:50;not null" json:"project_type"` // reforestation | soil-conservation | watershed | agroforestry
	AreaHa      float64 `gorm:"not null" json:"area_hectares"`
	Location    string  `gorm:"size:255" json:"location"`
	Latitude    float64 `gorm:"index:idx_coords" json:"latitude"`
	Longitude   float64 `gorm:"index:idx_coords" json:"longitude"`

	// Analysis snapshot, refreshed by reanalyze.
	SoilType        string  `gorm:"size:100" json:"soil_type"`
	SoilPH          float64 `json:"soil_ph"`
	SoilFertility   string  `gorm:"size:20" json:"soil_fertility"`
	ClimateZone     string  `gorm:"size:50" json:"climate_zone"`
	AnnualRainfall  int     `json:"annual_rainfall"`
	Temperature     float64 `json:"temperature"`
	Humidity        int     `json:"humidity"`
	Elevation       float64 `json:"elevation"`
	VegetationIndex float64 `json:"vegetation_index"`
	Degradation     string  `gorm:"size:20;index" json:"land_degradation_level"`

	RecommendedCrops      JSONStrings `gorm:"type:json" json:"recommended_crops"`
	RecommendedTrees      JSONStrings `gorm:"type:json" json:"recommended_trees"`
	RestorationTechniques JSONStrings `gorm:"type:json" json:"restoration_techniques"`
	TimelineMonths        int         `json:"estimated_timeline_months"`
	EstimatedBudget       float64     `json:"estimated_budget"`

	Status       string     `gorm:"size:20;default:planning;index" json:"status"`
	ProgressPct  int        `gorm:"default:0" json:"progress_percentage"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	LastAnalyzed *time.Time `json:"last_analyzed_at"`
}
