package services

import (
	"testing"

	"github.com/StevenOyar/RegenArdhi/models"

	"github.com/stretchr/testify/assert"
)

func TestVegetationHealth(t *testing.T) {
	assert.Equal(t, "excellent", VegetationHealth(0.65))
	assert.Equal(t, "excellent", VegetationHealth(0.6))
	assert.Equal(t, "good", VegetationHealth(0.45))
	assert.Equal(t, "fair", VegetationHealth(0.25))
	assert.Equal(t, "poor", VegetationHealth(0.12))
	assert.Equal(t, "critical", VegetationHealth(0.05))
}

func TestCanopyCover(t *testing.T) {
	assert.InDelta(t, 0, CanopyCover(0.05), 0.001)   // below offset clamps to 0
	assert.InDelta(t, 33.3, CanopyCover(0.4), 0.001)
	assert.InDelta(t, 100, CanopyCover(1.0), 0.001)  // clamps at 100
}

func TestErosionRisk(t *testing.T) {
	tests := []struct {
		name     string
		slope    float64
		cover    float64
		rainfall int
		want     string
	}{
		{"flat well covered", 2, 80, 500, models.AlertLow},
		{"moderate slope sparse", 10, 30, 500, models.AlertMedium},
		{"steep bare wet", 35, 10, 1600, models.AlertCritical},
		{"steep moderate cover", 20, 50, 1100, models.AlertHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErosionRisk(tt.slope, tt.cover, tt.rainfall))
		})
	}
}

func TestAlertFor(t *testing.T) {
	level, msg := AlertFor(0.15, 0, models.AlertLow)
	assert.Equal(t, models.AlertCritical, level)
	assert.Equal(t, "Critical vegetation loss detected", msg)

	level, msg = AlertFor(0.5, -25, models.AlertLow)
	assert.Equal(t, models.AlertHigh, level)
	assert.Equal(t, "Significant vegetation decline detected", msg)

	level, msg = AlertFor(0.5, 0, models.AlertHigh)
	assert.Equal(t, models.AlertHigh, level)
	assert.Equal(t, "High erosion risk detected", msg)

	level, msg = AlertFor(0.3, 0, models.AlertLow)
	assert.Equal(t, models.AlertMedium, level)
	assert.Equal(t, "Vegetation health below optimal", msg)

	level, msg = AlertFor(0.5, 5, models.AlertLow)
	assert.Equal(t, models.AlertNone, level)
	assert.Empty(t, msg)
}

func TestAlertFor_Precedence(t *testing.T) {
	// absolute loss beats decline beats erosion
	level, _ := AlertFor(0.15, -30, models.AlertCritical)
	assert.Equal(t, models.AlertCritical, level)

	level, _ = AlertFor(0.5, -30, models.AlertCritical)
	assert.Equal(t, models.AlertHigh, level)
}
