package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/StevenOyar/RegenArdhi/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Projects *services.ProjectService
	Insights *services.InsightService
}

func NewInsightController(projects *services.ProjectService, insights *services.InsightService) *InsightController {
	return &InsightController{Projects: projects, Insights: insights}
}

// GET /insights/api/project/:id/insights
func (ic *InsightController) ProjectInsights(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := ic.Projects.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	insights, err := ic.Insights.Comprehensive(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"insights":     insights,
		"generated_at": time.Now().Format(time.RFC3339),
	})
}

// GET /insights/api/project/:id/analytics?period=30d
func (ic *InsightController) ProjectAnalytics(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, err := ic.Projects.Get(userID, id); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	period := c.DefaultQuery("period", "30d")
	days, err := strconv.Atoi(strings.TrimSuffix(period, "d"))
	if err != nil || days <= 0 {
		days = 30
	}

	analytics, err := ic.Insights.AnalyticsData(id, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}
