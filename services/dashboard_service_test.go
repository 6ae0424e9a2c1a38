package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthScore(t *testing.T) {
	// no monitoring data yet: neutral default
	assert.Equal(t, 78, HealthScore(0, 0, 0))

	// 0.5*100*0.4 + 50*0.3 + 40*0.3 = 47
	assert.Equal(t, 47, HealthScore(0.5, 50, 40))

	// perfect conditions cap at 100
	assert.Equal(t, 100, HealthScore(1.0, 100, 100))
}

func TestMetricPct(t *testing.T) {
	assert.Equal(t, 55, metricPct(0.55, 100))
	assert.Equal(t, 100, metricPct(1.2, 100))
	assert.Equal(t, 0, metricPct(-3, 1))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "recently", RelativeTime(time.Time{}, now))
	assert.Equal(t, "just now", RelativeTime(now.Add(-30*time.Second), now))
	assert.Equal(t, "1 minute ago", RelativeTime(now.Add(-90*time.Second), now))
	assert.Equal(t, "5 minutes ago", RelativeTime(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3 hours ago", RelativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days ago", RelativeTime(now.Add(-48*time.Hour), now))
	assert.Equal(t, "Jun 01, 2025", RelativeTime(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC), now))
}
