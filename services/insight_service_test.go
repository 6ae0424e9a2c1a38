package services

import (
	"testing"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendDirection(t *testing.T) {
	assert.Equal(t, "stable", TrendDirection(nil))
	assert.Equal(t, "stable", TrendDirection([]float64{0.5}))
	assert.Equal(t, "stable", TrendDirection([]float64{0.5, 0.5, 0.5}))
	assert.Equal(t, "improving", TrendDirection([]float64{0.2, 0.3, 0.4, 0.5}))
	assert.Equal(t, "declining", TrendDirection([]float64{0.5, 0.4, 0.3, 0.2}))
	// slope within ±0.01 reads as stable
	assert.Equal(t, "stable", TrendDirection([]float64{0.40, 0.405, 0.41}))
}

func TestVegetationInsights_NilTrend(t *testing.T) {
	assert.Empty(t, VegetationInsights(nil, nil))
}

func TestVegetationInsights_Excellent(t *testing.T) {
	trend := &NDVITrend{Current: 0.7, Trend: "stable"}
	insights := VegetationInsights(trend, nil)
	require.Len(t, insights, 1)
	assert.Equal(t, "positive", insights[0].Type)
	assert.Equal(t, "Excellent Vegetation Health", insights[0].Title)
	assert.Equal(t, 92, insights[0].Confidence)
}

func TestVegetationInsights_CriticalAndDecline(t *testing.T) {
	trend := &NDVITrend{Current: 0.2, Trend: "declining", ChangePercent: -15}
	insights := VegetationInsights(trend, nil)
	require.Len(t, insights, 2)
	assert.Equal(t, "Critical Vegetation Loss", insights[0].Title)
	assert.Equal(t, "Declining Vegetation Trend", insights[1].Title)
	assert.Equal(t, 87, insights[1].Confidence)
}

func TestVegetationInsights_RecoveryTrend(t *testing.T) {
	trend := &NDVITrend{Current: 0.5, Trend: "improving", ChangePercent: 18}
	insights := VegetationInsights(trend, nil)
	require.Len(t, insights, 1)
	assert.Equal(t, "Strong Recovery Trend", insights[0].Title)
}

func TestVegetationInsights_Drought(t *testing.T) {
	trend := &NDVITrend{Current: 0.5, Trend: "stable"}
	climate := &ClimateSummary{
		Rainfall:    RainfallStats{Total: 150},
		Temperature: SeriesStats{Avg: 32},
	}
	insights := VegetationInsights(trend, climate)
	require.Len(t, insights, 1)
	assert.Equal(t, "Drought Stress Detected", insights[0].Title)
	assert.Equal(t, 83, insights[0].Confidence)
}

func TestSoilInsights(t *testing.T) {
	assert.Empty(t, SoilInsights(nil))

	rec := &models.MonitoringRecord{SoilMoisture: 15, SoilPH: 5.0, ErosionRisk: models.AlertHigh}
	insights := SoilInsights(rec)
	require.Len(t, insights, 3)
	assert.Equal(t, "Low Soil Moisture", insights[0].Title)
	assert.Equal(t, "Acidic Soil Detected", insights[1].Title)
	assert.Equal(t, "High Erosion Risk", insights[2].Title)
}

func TestSoilInsights_AlkalineWaterlogged(t *testing.T) {
	rec := &models.MonitoringRecord{SoilMoisture: 85, SoilPH: 9.0, ErosionRisk: models.AlertLow}
	insights := SoilInsights(rec)
	require.Len(t, insights, 2)
	assert.Equal(t, "High Soil Moisture", insights[0].Title)
	assert.Equal(t, "Alkaline Soil Detected", insights[1].Title)
}

func TestSoilInsights_MissingPHSkipped(t *testing.T) {
	// zero pH means unrecorded, not extremely acidic
	rec := &models.MonitoringRecord{SoilMoisture: 50, SoilPH: 0, ErosionRisk: models.AlertLow}
	assert.Empty(t, SoilInsights(rec))
}

func TestSeasonalInsights(t *testing.T) {
	long := SeasonalInsights(time.April)
	require.Len(t, long, 1)
	assert.Equal(t, "Optimal Planting Season", long[0].Title)
	assert.Equal(t, 95, long[0].Confidence)

	short := SeasonalInsights(time.November)
	require.Len(t, short, 1)
	assert.Equal(t, "Secondary Planting Window", short[0].Title)

	dry := SeasonalInsights(time.January)
	require.Len(t, dry, 1)
	assert.Equal(t, "Dry Season Management", dry[0].Title)

	assert.Nil(t, SeasonalInsights(time.July))
}
