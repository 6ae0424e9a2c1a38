package models

import "time"

// Alert levels attached to monitoring records.
const (
	AlertNone     = "none"
	AlertLow      = "low"
	AlertMedium   = "medium"
	AlertHigh     = "high"
	AlertCritical = "critical"
)

type MonitoringRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"index:idx_project_recorded;not null" json:"project_id"`
	RecordedAt time.Time `gorm:"index:idx_project_recorded" json:"recorded_at"`

	// Vegetation
	NDVI             float64 `json:"ndvi"`
	VegetationHealth string  `gorm:"size:20" json:"vegetation_health"` // excellent | good | fair | poor | critical
	CanopyCover      float64 `json:"canopy_cover"`

	// Soil
	SoilMoisture    float64 `json:"soil_moisture"`
	SoilTemperature float64 `json:"soil_temperature"`
	SoilPH          float64 `json:"soil_ph"`
	ErosionRisk     string  `gorm:"size:20" json:"erosion_risk"` // low | medium | high | critical

	// Climate
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`

	// Change detection
	VegetationChange float64 `json:"vegetation_change"`
	DegradationTrend string  `gorm:"size:20" json:"degradation_trend"` // improving | declining

	AlertLevel   string `gorm:"size:20;default:none;index" json:"alert_level"`
	AlertMessage string `gorm:"type:text" json:"alert_message"`
}
