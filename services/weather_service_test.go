package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateWeather_Tropics(t *testing.T) {
	w := EstimateWeather(-1.29, 36.82) // Nairobi
	assert.True(t, w.Estimated)
	assert.InDelta(t, 29.2, w.Temperature, 0.01) // 30 - 1.29*0.6
	assert.GreaterOrEqual(t, w.Humidity, 70.0)
	assert.Equal(t, 1013.0, w.Pressure)
}

func TestEstimateWeather_HighLatitude(t *testing.T) {
	w := EstimateWeather(65, 10)
	assert.InDelta(t, -9.0, w.Temperature, 0.01)
	assert.GreaterOrEqual(t, w.Humidity, 50.0)
	assert.Less(t, w.Humidity, 80.0)
}

func TestEstimateWeather_TemperatureClamps(t *testing.T) {
	hot := EstimateWeather(0, 0)
	assert.LessOrEqual(t, hot.Temperature, 45.0)

	cold := EstimateWeather(89, 0)
	assert.Equal(t, -20.0, cold.Temperature)
}
