package services

import (
	"testing"

	"github.com/StevenOyar/RegenArdhi/models"

	"github.com/stretchr/testify/assert"
)

func TestEstimateNDVI_LatitudeBands(t *testing.T) {
	// neutral weather, lon 0: no boost, no penalty, no variation
	w := &Weather{Temperature: 20, Humidity: 50}

	tests := []struct {
		name string
		lat  float64
		want float64
	}{
		{"equatorial", 0, 0.5},
		{"tropical", 15, 0.4},
		{"subtropical", 30, 0.3},
		{"temperate", 40, 0.25},
		{"high latitude", 60, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateNDVI(tt.lat, 0, w, nil), 0.001)
		})
	}
}

func TestEstimateNDVI_WeatherAdjustments(t *testing.T) {
	// warm and humid boosts, cold or dry penalizes
	warm := &Weather{Temperature: 28, Humidity: 70}
	cold := &Weather{Temperature: 5, Humidity: 50}
	dry := &Weather{Temperature: 20, Humidity: 20}

	base := EstimateNDVI(0, 0, &Weather{Temperature: 20, Humidity: 50}, nil)
	assert.InDelta(t, base+0.1, EstimateNDVI(0, 0, warm, nil), 0.001)
	assert.InDelta(t, base-0.15, EstimateNDVI(0, 0, cold, nil), 0.001)
	assert.InDelta(t, base-0.15, EstimateNDVI(0, 0, dry, nil), 0.001)
}

func TestEstimateNDVI_Clamped(t *testing.T) {
	// high latitude plus cold pushes below zero before the clamp
	cold := &Weather{Temperature: -10, Humidity: 40}
	got := EstimateNDVI(70, 0, cold, nil)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
}

func TestEstimateNDVI_ClimateAnomaly(t *testing.T) {
	w := &Weather{Temperature: 20, Humidity: 50}
	base := EstimateNDVI(0, 0, w, nil)

	hot := &ClimateSummary{TemperatureSeries: []float64{20, 20, 20, 26}}
	coldSnap := &ClimateSummary{TemperatureSeries: []float64{20, 20, 20, 14}}

	assert.InDelta(t, base+0.03, EstimateNDVI(0, 0, w, hot), 0.001)
	assert.InDelta(t, base-0.03, EstimateNDVI(0, 0, w, coldSnap), 0.001)
}

func TestClimateZone(t *testing.T) {
	assert.Equal(t, "Polar", ClimateZone(70, -5))
	assert.Equal(t, "Subpolar", ClimateZone(63, 5))
	assert.Equal(t, "Warm Temperate", ClimateZone(50, 22))
	assert.Equal(t, "Cool Temperate", ClimateZone(50, 15))
	assert.Equal(t, "Subtropical", ClimateZone(35, 28))
	assert.Equal(t, "Warm Temperate", ClimateZone(35, 20))
	assert.Equal(t, "Tropical", ClimateZone(25, 27))
	assert.Equal(t, "Equatorial", ClimateZone(-1.29, 26)) // Nairobi
}

func TestSoilType(t *testing.T) {
	// elevation dominates latitude
	assert.Equal(t, "Rocky", SoilType(0, 0, 2500))
	assert.Equal(t, "Loamy", SoilType(0, 0, 1500))

	// longitude indexes into the band's candidates
	assert.Equal(t, "Laterite", SoilType(0, 0, 100))
	assert.Equal(t, "Tropical Red", SoilType(0, 1, 100))
	assert.Equal(t, "Alluvial", SoilType(0, 2, 100))
	assert.Equal(t, "Laterite", SoilType(0, 3, 100))
}

func TestSoilPH(t *testing.T) {
	assert.InDelta(t, 5.5, SoilPH("Laterite", 50), 0.001)
	assert.InDelta(t, 5.2, SoilPH("Laterite", 80), 0.001)  // humid soils acidify
	assert.InDelta(t, 5.8, SoilPH("Laterite", 30), 0.001)  // dry soils alkalize
	assert.InDelta(t, 6.5, SoilPH("Unknown", 50), 0.001)   // default base
	assert.InDelta(t, 7.2, SoilPH("Clay", 50), 0.001)
}

func TestFertility(t *testing.T) {
	assert.Equal(t, "high", Fertility(6.5, 0.6))
	assert.Equal(t, "medium", Fertility(5.7, 0.4))
	assert.Equal(t, "medium", Fertility(7.8, 0.4))
	assert.Equal(t, "low", Fertility(6.5, 0.3)) // good pH, sparse vegetation
	assert.Equal(t, "low", Fertility(4.5, 0.7)) // dense vegetation, bad pH
}

func TestAnnualRainfall(t *testing.T) {
	assert.Equal(t, 2500, AnnualRainfall("Equatorial", 50, 0))
	assert.Equal(t, 3250, AnnualRainfall("Equatorial", 80, 0))   // humid x1.3
	assert.Equal(t, 1500, AnnualRainfall("Equatorial", 30, 0))   // dry x0.6
	assert.Equal(t, 2600, AnnualRainfall("Equatorial", 50, 5))   // +mod(lon,15)*20
	assert.Equal(t, 800, AnnualRainfall("Nowhere", 50, 0))       // unknown zone default
}

func TestAssessDegradation(t *testing.T) {
	tests := []struct {
		name   string
		ndvi   float64
		soilPH float64
		area   float64
		want   string
	}{
		{"healthy small plot", 0.6, 6.5, 10, models.DegradationMinimal},
		{"sparse vegetation", 0.4, 6.5, 10, models.DegradationModerate},
		{"stressed vegetation", 0.3, 6.5, 10, models.DegradationModerate},
		{"bare soil", 0.15, 6.5, 10, models.DegradationSevere},
		{"bare and acidic", 0.15, 4.5, 10, models.DegradationCritical},
		{"bare acidic large", 0.15, 4.5, 150, models.DegradationCritical},
		{"stressed large plot", 0.3, 6.5, 150, models.DegradationSevere},
		{"alkaline counts too", 0.4, 9.0, 10, models.DegradationModerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessDegradation(tt.ndvi, tt.soilPH, tt.area))
		})
	}
}

func TestRecommend(t *testing.T) {
	rec := Recommend("Tropical", models.DegradationModerate, 1200)
	assert.Len(t, rec.Crops, 5) // capped from 6
	assert.Len(t, rec.Trees, 5)
	assert.Equal(t, 24, rec.TimelineMonths)
	assert.InDelta(t, 150000, rec.BudgetPerHa, 0.01)
	assert.NotEmpty(t, rec.Techniques)
}

func TestRecommend_AridSurcharge(t *testing.T) {
	rec := Recommend("Subtropical", models.DegradationSevere, 400)
	assert.InDelta(t, 525000, rec.BudgetPerHa, 0.01) // 350000 * 1.5
	assert.Equal(t, 36, rec.TimelineMonths)
}

func TestRecommend_UnknownZone(t *testing.T) {
	rec := Recommend("Polar", models.DegradationMinimal, 800)
	assert.Equal(t, []string{"Consult agronomist"}, rec.Crops)
	assert.Equal(t, []string{"Consult forester"}, rec.Trees)
}
