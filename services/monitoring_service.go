package services

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"
	"github.com/StevenOyar/RegenArdhi/utils"

	"gorm.io/gorm"
)

type MonitoringService struct {
	db      *gorm.DB
	weather *WeatherService
	notify  *NotificationService
	push    *PushService
}

func NewMonitoringService(db *gorm.DB, weather *WeatherService, notify *NotificationService, push *PushService) *MonitoringService {
	return &MonitoringService{db: db, weather: weather, notify: notify, push: push}
}

// VegetationHealth buckets NDVI into the category shown on the dashboard.
func VegetationHealth(ndvi float64) string {
	switch {
	case ndvi >= 0.6:
		return "excellent"
	case ndvi >= 0.4:
		return "good"
	case ndvi >= 0.2:
		return "fair"
	case ndvi >= 0.1:
		return "poor"
	default:
		return "critical"
	}
}

// CanopyCover estimates percent cover from NDVI, clamped to [0,100].
func CanopyCover(ndvi float64) float64 {
	return clamp((ndvi-0.1)*111, 0, 100)
}

// ErosionRisk scores slope steepness, vegetation cover, and annual
// rainfall into a risk level.
func ErosionRisk(slope, vegetationCover float64, rainfall int) string {
	score := 0
	switch {
	case slope > 30:
		score += 3
	case slope > 15:
		score += 2
	case slope > 5:
		score++
	}
	switch {
	case vegetationCover < 20:
		score += 3
	case vegetationCover < 40:
		score += 2
	case vegetationCover < 60:
		score++
	}
	switch {
	case rainfall > 1500:
		score += 2
	case rainfall > 1000:
		score++
	}
	switch {
	case score >= 6:
		return models.AlertCritical
	case score >= 4:
		return models.AlertHigh
	case score >= 2:
		return models.AlertMedium
	default:
		return models.AlertLow
	}
}

// AlertFor derives the record's alert level. Absolute vegetation loss
// dominates, then sharp declines against baseline, then erosion, then
// sub-optimal health.
func AlertFor(ndvi, vegChange float64, erosionRisk string) (level, message string) {
	switch {
	case ndvi < 0.2:
		return models.AlertCritical, "Critical vegetation loss detected"
	case vegChange < -20:
		return models.AlertHigh, "Significant vegetation decline detected"
	case erosionRisk == models.AlertHigh || erosionRisk == models.AlertCritical:
		return models.AlertHigh, fmt.Sprintf("%s erosion risk detected", capitalize(erosionRisk))
	case ndvi < 0.35:
		return models.AlertMedium, "Vegetation health below optimal"
	default:
		return models.AlertNone, ""
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// buildRecord derives a full monitoring snapshot for the project from
// current weather. Slope is assumed moderate (5 degrees); the platform
// has no terrain source yet.
func (s *MonitoringService) buildRecord(p *models.Project) *models.MonitoringRecord {
	w := s.weather.CurrentWeather(p.Latitude, p.Longitude)
	ndvi := EstimateNDVI(p.Latitude, p.Longitude, w, nil)

	canopy := CanopyCover(ndvi)
	moisture := math.Min(100, w.Humidity*0.7)
	erosion := ErosionRisk(5, canopy, p.AnnualRainfall)

	var vegChange float64
	if p.VegetationIndex > 0 {
		vegChange = (ndvi - p.VegetationIndex) / p.VegetationIndex * 100
	}
	trend := "declining"
	if vegChange > 0 {
		trend = "improving"
	}

	level, message := AlertFor(ndvi, vegChange, erosion)

	return &models.MonitoringRecord{
		ProjectID:        p.ID,
		RecordedAt:       time.Now(),
		NDVI:             ndvi,
		VegetationHealth: VegetationHealth(ndvi),
		CanopyCover:      math.Round(canopy*100) / 100,
		SoilMoisture:     math.Round(moisture*100) / 100,
		SoilTemperature:  w.Temperature,
		SoilPH:           p.SoilPH,
		ErosionRisk:      erosion,
		Temperature:      w.Temperature,
		Humidity:         int(w.Humidity),
		WindSpeed:        w.WindSpeed,
		VegetationChange: math.Round(vegChange*100) / 100,
		DegradationTrend: trend,
		AlertLevel:       level,
		AlertMessage:     message,
	}
}

// Latest returns the newest record plus up to 30 days of history.
func (s *MonitoringService) Latest(projectID uint) (*models.MonitoringRecord, []models.MonitoringRecord, error) {
	var history []models.MonitoringRecord
	cutoff := time.Now().AddDate(0, 0, -30)
	err := s.db.Where("project_id = ? AND recorded_at >= ?", projectID, cutoff).
		Order("recorded_at ASC").Find(&history).Error
	if err != nil {
		return nil, nil, err
	}

	var latest models.MonitoringRecord
	err = s.db.Where("project_id = ?", projectID).Order("recorded_at DESC").First(&latest).Error
	if err == gorm.ErrRecordNotFound {
		return nil, history, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &latest, history, nil
}

// Update generates and persists a fresh record. High and critical alerts
// raise a notification and a push to the project owner.
func (s *MonitoringService) Update(p *models.Project) (*models.MonitoringRecord, error) {
	rec := s.buildRecord(p)
	if err := s.db.Create(rec).Error; err != nil {
		return nil, err
	}

	if rec.AlertLevel == models.AlertHigh || rec.AlertLevel == models.AlertCritical {
		_, _ = s.notify.Notify(p.UserID, NotifySystem,
			fmt.Sprintf("%s: %s", p.Name, rec.AlertMessage),
			&p.ID, fmt.Sprintf("/projects/%d/monitoring", p.ID))

		if s.push != nil {
			s.push.PushToUser(p.UserID, fmt.Sprintf("Alert: %s", p.Name), rec.AlertMessage,
				map[string]string{"projectId": fmt.Sprintf("%d", p.ID), "alertLevel": rec.AlertLevel})
		}

		if rec.AlertLevel == models.AlertCritical {
			var owner models.User
			if err := s.db.Select("email").First(&owner, p.UserID).Error; err == nil {
				if err := utils.SendAlertEmail(owner.Email, p.Name, rec.AlertMessage); err != nil {
					log.Printf("alert email to %s failed: %v", owner.Email, err)
				}
			}
		}
	}
	return rec, nil
}

// GenerateHistory seeds the past N days with synthetic records. NDVI is
// scaled from 80% up to 120% of the current estimate so charts show a
// gradual recovery.
func (s *MonitoringService) GenerateHistory(p *models.Project, days int) (int, error) {
	if days <= 0 {
		days = 30
	}

	created := 0
	for i := days; i > 0; i-- {
		rec := s.buildRecord(p)
		progress := float64(days-i) / float64(days)
		rec.NDVI = clamp(rec.NDVI*(0.8+progress*0.4), 0.1, 1.0)
		rec.VegetationHealth = VegetationHealth(rec.NDVI)
		rec.CanopyCover = math.Round(CanopyCover(rec.NDVI)*100) / 100
		rec.RecordedAt = time.Now().AddDate(0, 0, -i)
		rec.AlertLevel = models.AlertNone
		rec.AlertMessage = ""

		if err := s.db.Create(rec).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
