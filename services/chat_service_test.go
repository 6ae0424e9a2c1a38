package services

import (
	"strings"
	"testing"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	longRains = time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	shortRains = time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC)
	drySeason = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
)

func TestFallbackResponse_NDVIWithContext(t *testing.T) {
	resp := FallbackResponse("What is my NDVI?", "Current project: Farm (agroforestry) | NDVI: 0.72 (excellent)", drySeason)
	assert.Contains(t, resp, "0.72")
	assert.Contains(t, resp, "excellent vegetation health")

	resp = FallbackResponse("How is my vegetation?", "NDVI: 0.45 (good)", drySeason)
	assert.Contains(t, resp, "0.45")
	assert.Contains(t, resp, "good vegetation cover")

	resp = FallbackResponse("ndvi status", "NDVI: 0.25 (fair)", drySeason)
	assert.Contains(t, resp, "fair vegetation health")

	resp = FallbackResponse("ndvi status", "NDVI: 0.10 (critical)", drySeason)
	assert.Contains(t, resp, "ALERT")
}

func TestFallbackResponse_NDVIWithoutContext(t *testing.T) {
	resp := FallbackResponse("what is ndvi", "", drySeason)
	assert.Contains(t, resp, "Normalized Difference Vegetation Index")
	assert.Contains(t, resp, "Scale interpretation")
}

func TestFallbackResponse_Soil(t *testing.T) {
	resp := FallbackResponse("how do I improve soil moisture", "", drySeason)
	assert.Contains(t, resp, "Soil moisture is critical")

	resp = FallbackResponse("tell me about soil health", "", drySeason)
	assert.Contains(t, resp, "foundation of successful land restoration")
}

func TestFallbackResponse_PlantingByMonth(t *testing.T) {
	resp := FallbackResponse("when should I plant trees?", "", longRains)
	assert.Contains(t, resp, "OPTIMAL PLANTING SEASON")

	resp = FallbackResponse("when should I plant trees?", "", shortRains)
	assert.Contains(t, resp, "SECONDARY PLANTING WINDOW")

	resp = FallbackResponse("when should I plant trees?", "", drySeason)
	assert.Contains(t, resp, "Dry Season")
	assert.Contains(t, resp, "NOT recommended")
}

func TestFallbackResponse_Techniques(t *testing.T) {
	resp := FallbackResponse("how can I restore my land", "", drySeason)
	assert.Contains(t, resp, "RESTORATION STRATEGIES")
	assert.Contains(t, resp, "SOIL CONSERVATION")
}

func TestFallbackResponse_DataInterpretation(t *testing.T) {
	resp := FallbackResponse("what does my data mean", "", longRains)
	assert.Contains(t, resp, "DATA INTERPRETATION GUIDE")
}

func TestFallbackResponse_Greeting(t *testing.T) {
	resp := FallbackResponse("hello there", "", drySeason)
	assert.Contains(t, resp, "RegenAI")
	assert.NotContains(t, resp, "working on a project")

	resp = FallbackResponse("hi", "Current project: Farm", drySeason)
	assert.Contains(t, resp, "working on a project")
}

func TestFallbackResponse_ThanksAndDefault(t *testing.T) {
	resp := FallbackResponse("thank you!", "", drySeason)
	assert.Contains(t, resp, "You're welcome")

	resp = FallbackResponse("xyzzy", "", drySeason)
	assert.Contains(t, resp, "Popular questions")
}

func TestContextPrompt(t *testing.T) {
	ndvi := 0.55
	moisture := 42.0
	ctx := &chatContext{
		TotalProjects: 3,
		TotalArea:     120.5,
		ProjectName:   "Ridge Farm",
		ProjectType:   "reforestation",
		CurrentNDVI:   &ndvi,
		SoilMoisture:  &moisture,
	}
	prompt := ctx.contextPrompt()
	assert.Contains(t, prompt, "3 projects covering 120.5 hectares")
	assert.Contains(t, prompt, "Ridge Farm (reforestation)")
	assert.Contains(t, prompt, "NDVI: 0.55 (good)")
	assert.Contains(t, prompt, "Soil moisture: 42.0%")
	assert.Equal(t, 4, strings.Count(prompt, " | ")+1)
}

func TestContextPrompt_Empty(t *testing.T) {
	assert.Empty(t, (&chatContext{}).contextPrompt())
}

func TestExtractGeneratedText(t *testing.T) {
	assert.Equal(t, "answer", extractGeneratedText([]byte(`[{"generated_text":"answer"}]`)))
	assert.Equal(t, "answer", extractGeneratedText([]byte(`{"generated_text":"answer"}`)))
	assert.Equal(t, "answer", extractGeneratedText([]byte(`["answer"]`)))
	assert.Empty(t, extractGeneratedText([]byte(`{"error":"loading"}`)))
	assert.Empty(t, extractGeneratedText([]byte(`not json`)))
}

func TestHistory_ReturnsLatestInChronologicalOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)

	base := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	questions := []string{
		"soil check", "ndvi question", "planting window", "erosion advice", "budget question",
	}
	for i, q := range questions {
		require.NoError(t, db.Create(&models.ChatMessage{
			UserID:    7,
			Message:   q,
			Response:  "ok",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	// the limit trims the oldest exchanges, and order stays chronological
	msgs, err := svc.History(7, nil, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "erosion advice", msgs[0].Message)
	assert.Equal(t, "budget question", msgs[1].Message)

	msgs, err = svc.History(7, nil, 0)
	require.NoError(t, err)
	require.Len(t, msgs, len(questions))
	assert.Equal(t, "soil check", msgs[0].Message)
}

func TestHistory_ScopedToProject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)

	pid := uint(3)
	require.NoError(t, db.Create(&models.ChatMessage{UserID: 7, ProjectID: &pid, Message: "scoped", Response: "ok"}).Error)
	require.NoError(t, db.Create(&models.ChatMessage{UserID: 7, Message: "global", Response: "ok"}).Error)

	msgs, err := svc.History(7, &pid, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "scoped", msgs[0].Message)
}
