package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"gorm.io/gorm"
)

// Insight is one generated observation about a project, ranked by
// confidence for display.
type Insight struct {
	Type            string   `json:"type"` // positive | info | warning | critical
	Category        string   `json:"category"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Confidence      int      `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}

// NDVITrend summarizes the vegetation index series over the analysis window.
type NDVITrend struct {
	Current       float64   `json:"current"`
	Previous      float64   `json:"previous"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Trend         string    `json:"trend"` // improving | declining | stable
	Values        []float64 `json:"values"`
	Dates         []string  `json:"dates"`
	Avg           float64   `json:"avg"`
	Volatility    float64   `json:"volatility"`
}

type InsightService struct {
	db      *gorm.DB
	climate *NASAPowerService
}

func NewInsightService(db *gorm.DB, climate *NASAPowerService) *InsightService {
	return &InsightService{db: db, climate: climate}
}

// TrendDirection fits a least-squares slope over the series; slopes within
// ±0.01 read as stable.
func TrendDirection(values []float64) string {
	if len(values) < 2 {
		return "stable"
	}
	n := float64(len(values))
	xMean := (n - 1) / 2
	var yMean float64
	for _, v := range values {
		yMean += v
	}
	yMean /= n

	var num, den float64
	for i, v := range values {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	if den == 0 {
		return "stable"
	}
	slope := num / den
	switch {
	case slope > 0.01:
		return "improving"
	case slope < -0.01:
		return "declining"
	default:
		return "stable"
	}
}

// NDVITrendFor computes the trend from up to 90 days of monitoring
// history. Returns nil when fewer than two data points exist.
func (s *InsightService) NDVITrendFor(projectID uint, days int) (*NDVITrend, error) {
	if days <= 0 {
		days = 90
	}
	var records []models.MonitoringRecord
	cutoff := time.Now().AddDate(0, 0, -days)
	err := s.db.Select("ndvi, recorded_at").
		Where("project_id = ? AND recorded_at >= ?", projectID, cutoff).
		Order("recorded_at ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	values := make([]float64, len(records))
	dates := make([]string, len(records))
	var sum float64
	for i, r := range records {
		values[i] = r.NDVI
		dates[i] = r.RecordedAt.Format("2006-01-02")
		sum += r.NDVI
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	first, last := values[0], values[len(values)-1]
	t := &NDVITrend{
		Current:    last,
		Previous:   first,
		Change:     last - first,
		Trend:      TrendDirection(values),
		Values:     values,
		Dates:      dates,
		Avg:        mean,
		Volatility: math.Sqrt(variance),
	}
	if first > 0 {
		t.ChangePercent = (last - first) / first * 100
	}
	return t, nil
}

// VegetationInsights evaluates current NDVI, the trend, and drought
// conditions from recent climate history.
func VegetationInsights(ndvi *NDVITrend, climate *ClimateSummary) []Insight {
	var insights []Insight
	if ndvi == nil {
		return insights
	}

	if ndvi.Current > 0.6 {
		insights = append(insights, Insight{
			Type: "positive", Category: "vegetation",
			Title:       "Excellent Vegetation Health",
			Description: fmt.Sprintf("Current NDVI of %.2f indicates dense, healthy vegetation cover. Your restoration efforts are showing strong results.", ndvi.Current),
			Confidence:  92,
			Recommendations: []string{
				"Continue current management practices",
				"Monitor for pest and disease",
				"Consider expanding restoration to adjacent areas",
			},
		})
	} else if ndvi.Current < 0.3 {
		insights = append(insights, Insight{
			Type: "critical", Category: "vegetation",
			Title:       "Critical Vegetation Loss",
			Description: fmt.Sprintf("NDVI of %.2f indicates severe vegetation stress or loss. Immediate intervention required.", ndvi.Current),
			Confidence:  88,
			Recommendations: []string{
				"Conduct immediate site assessment",
				"Implement emergency reforestation",
				"Apply soil conservation measures",
				"Consider drought-resistant species",
			},
		})
	}

	if ndvi.Trend == "improving" && ndvi.ChangePercent > 10 {
		insights = append(insights, Insight{
			Type: "positive", Category: "trend",
			Title:       "Strong Recovery Trend",
			Description: fmt.Sprintf("Vegetation index has improved by %.1f%% over the monitoring period. Ecosystem is recovering well.", ndvi.ChangePercent),
			Confidence:  85,
			Recommendations: []string{
				"Maintain current restoration activities",
				"Document successful practices",
				"Share learnings with community",
			},
		})
	} else if ndvi.Trend == "declining" && ndvi.ChangePercent < -10 {
		insights = append(insights, Insight{
			Type: "warning", Category: "trend",
			Title:       "Declining Vegetation Trend",
			Description: fmt.Sprintf("Vegetation health has declined by %.1f%%. Investigation needed to identify causes.", math.Abs(ndvi.ChangePercent)),
			Confidence:  87,
			Recommendations: []string{
				"Investigate decline causes",
				"Increase monitoring frequency",
				"Review and adjust management plan",
				"Check for environmental stressors",
			},
		})
	}

	if climate != nil && climate.Rainfall.Total < 200 && climate.Temperature.Avg > 30 {
		insights = append(insights, Insight{
			Type: "warning", Category: "climate",
			Title:       "Drought Stress Detected",
			Description: fmt.Sprintf("Low rainfall (%.0fmm) combined with high temperatures (%.1f°C) increasing drought risk.", climate.Rainfall.Total, climate.Temperature.Avg),
			Confidence:  83,
			Recommendations: []string{
				"Implement water conservation techniques",
				"Install rainwater harvesting systems",
				"Use mulching to retain soil moisture",
				"Consider drought-resistant species",
			},
		})
	}

	return insights
}

// SoilInsights evaluates the latest monitoring record's soil indicators.
func SoilInsights(rec *models.MonitoringRecord) []Insight {
	var insights []Insight
	if rec == nil {
		return insights
	}

	if rec.SoilMoisture < 20 {
		insights = append(insights, Insight{
			Type: "warning", Category: "soil",
			Title:       "Low Soil Moisture",
			Description: fmt.Sprintf("Soil moisture at %.0f%% is below optimal levels. Plants may experience water stress.", rec.SoilMoisture),
			Confidence:  85,
			Recommendations: []string{
				"Increase irrigation frequency",
				"Apply organic mulch",
				"Consider drip irrigation",
				"Monitor daily until moisture improves",
			},
		})
	} else if rec.SoilMoisture > 80 {
		insights = append(insights, Insight{
			Type: "info", Category: "soil",
			Title:       "High Soil Moisture",
			Description: fmt.Sprintf("Soil moisture at %.0f%% is very high. Monitor for waterlogging or drainage issues.", rec.SoilMoisture),
			Confidence:  78,
			Recommendations: []string{
				"Check drainage systems",
				"Reduce irrigation if applicable",
				"Monitor for root diseases",
				"Consider drainage improvement",
			},
		})
	}

	if rec.SoilPH > 0 && rec.SoilPH < 5.5 {
		insights = append(insights, Insight{
			Type: "warning", Category: "soil",
			Title:       "Acidic Soil Detected",
			Description: fmt.Sprintf("Soil pH of %.1f is too acidic. This may limit nutrient availability and plant growth.", rec.SoilPH),
			Confidence:  90,
			Recommendations: []string{
				"Apply agricultural lime",
				"Use wood ash amendments",
				"Choose acid-tolerant species",
				"Retest pH after amendments",
			},
		})
	} else if rec.SoilPH > 8.5 {
		insights = append(insights, Insight{
			Type: "warning", Category: "soil",
			Title:       "Alkaline Soil Detected",
			Description: fmt.Sprintf("Soil pH of %.1f is too alkaline. Iron and other nutrients may become unavailable.", rec.SoilPH),
			Confidence:  88,
			Recommendations: []string{
				"Apply sulfur or organic matter",
				"Use acidifying fertilizers",
				"Choose alkaline-tolerant species",
				"Monitor nutrient deficiencies",
			},
		})
	}

	if rec.ErosionRisk == models.AlertHigh || rec.ErosionRisk == models.AlertCritical {
		insights = append(insights, Insight{
			Type: "critical", Category: "soil",
			Title:       fmt.Sprintf("%s Erosion Risk", capitalize(rec.ErosionRisk)),
			Description: "Soil erosion risk is elevated. Immediate soil conservation measures recommended.",
			Confidence:  86,
			Recommendations: []string{
				"Implement contour farming",
				"Build terraces or bunds",
				"Plant cover crops",
				"Install erosion control structures",
				"Increase vegetation cover",
			},
		})
	}

	return insights
}

// SeasonalInsights keys on East Africa's rainfall calendar: long rains
// March to May, short rains October to December, dry season January and
// February.
func SeasonalInsights(month time.Month) []Insight {
	switch month {
	case time.March, time.April, time.May:
		return []Insight{{
			Type: "positive", Category: "seasonal",
			Title:       "Optimal Planting Season",
			Description: "Long rains season is ideal for tree planting and establishing vegetation. Maximize restoration efforts now.",
			Confidence:  95,
			Recommendations: []string{
				"Accelerate tree planting activities",
				"Prepare seedlings in advance",
				"Focus on indigenous species",
				"Establish soil conservation structures",
				"Plan for 6-8 weeks of optimal conditions",
			},
		}}
	case time.October, time.November, time.December:
		return []Insight{{
			Type: "positive", Category: "seasonal",
			Title:       "Secondary Planting Window",
			Description: "Short rains provide another opportunity for planting. Focus on hardy species.",
			Confidence:  85,
			Recommendations: []string{
				"Plant drought-resistant species",
				"Supplement with irrigation if needed",
				"Apply mulch for moisture retention",
				"Monitor seedling establishment closely",
			},
		}}
	case time.January, time.February:
		return []Insight{{
			Type: "info", Category: "seasonal",
			Title:       "Dry Season Management",
			Description: "Dry season requires careful water management and protection of established vegetation.",
			Confidence:  88,
			Recommendations: []string{
				"Focus on watering established plants",
				"Apply mulch to conserve moisture",
				"Avoid planting new seedlings",
				"Monitor for drought stress",
				"Prepare for next planting season",
			},
		}}
	default:
		return nil
	}
}

// Comprehensive assembles vegetation, soil, and seasonal insights for a
// project, sorted by confidence. A NASA POWER outage degrades the climate
// portion but never fails the call.
func (s *InsightService) Comprehensive(p *models.Project) ([]Insight, error) {
	ndvi, err := s.NDVITrendFor(p.ID, 90)
	if err != nil {
		return nil, err
	}

	var latest *models.MonitoringRecord
	var rec models.MonitoringRecord
	if err := s.db.Where("project_id = ?", p.ID).Order("recorded_at DESC").First(&rec).Error; err == nil {
		latest = &rec
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	climate, err := s.climate.ClimateData(p.Latitude, p.Longitude, start, end)
	if err != nil {
		climate = nil
	}

	insights := VegetationInsights(ndvi, climate)
	insights = append(insights, SoilInsights(latest)...)
	insights = append(insights, SeasonalInsights(time.Now().Month())...)

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Confidence > insights[j].Confidence
	})
	return insights, nil
}

// AnalyticsPoint aggregates one day of monitoring for chart series.
type AnalyticsPoint struct {
	Date        string  `json:"date"`
	NDVI        float64 `json:"ndvi"`
	Canopy      float64 `json:"canopy"`
	Temperature float64 `json:"temperature"`
	Rainfall    float64 `json:"rainfall"`
	Humidity    float64 `json:"humidity"`
	Moisture    float64 `json:"moisture"`
	PH          float64 `json:"ph"`
}

type Analytics struct {
	NDVI    []map[string]any `json:"ndvi"`
	Climate []map[string]any `json:"climate"`
	Soil    []map[string]any `json:"soil"`
}

// AnalyticsData returns per-day averages for the chart panels. Period is
// "Nd" days, default 30.
func (s *InsightService) AnalyticsData(projectID uint, days int) (*Analytics, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	var rows []AnalyticsPoint
	err := s.db.Model(&models.MonitoringRecord{}).
		Select(`DATE(recorded_at) AS date,
			AVG(ndvi) AS ndvi,
			AVG(canopy_cover) AS canopy,
			AVG(temperature) AS temperature,
			SUM(rainfall) AS rainfall,
			AVG(humidity) AS humidity,
			AVG(soil_moisture) AS moisture,
			AVG(soil_ph) AS ph`).
		Where("project_id = ? AND recorded_at >= ?", projectID, cutoff).
		Group("DATE(recorded_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &Analytics{
		NDVI:    make([]map[string]any, 0, len(rows)),
		Climate: make([]map[string]any, 0, len(rows)),
		Soil:    make([]map[string]any, 0, len(rows)),
	}
	for _, r := range rows {
		out.NDVI = append(out.NDVI, map[string]any{"date": r.Date, "ndvi": r.NDVI, "canopy": r.Canopy})
		out.Climate = append(out.Climate, map[string]any{"date": r.Date, "temperature": r.Temperature, "rainfall": r.Rainfall, "humidity": r.Humidity})
		out.Soil = append(out.Soil, map[string]any{"date": r.Date, "moisture": r.Moisture, "ph": r.PH})
	}
	return out, nil
}
