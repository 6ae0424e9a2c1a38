package controllers

import (
	"net/http"
	"strconv"

	"github.com/StevenOyar/RegenArdhi/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(d *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: d}
}

// GET /dashboard/api/stats
func (dc *DashboardController) Stats(c *gin.Context) {
	userID := c.GetUint("userID")

	stats, err := dc.Dashboard.Stats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// GET /dashboard/api/recent-projects?limit=3
func (dc *DashboardController) RecentProjects(c *gin.Context) {
	userID := c.GetUint("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	projects, err := dc.Dashboard.RecentProjects(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

// GET /dashboard/api/activities
func (dc *DashboardController) Activities(c *gin.Context) {
	userID := c.GetUint("userID")

	activities := dc.Dashboard.RecentActivities(userID, 10)
	c.JSON(http.StatusOK, gin.H{"success": true, "activities": activities})
}

// GET /dashboard/api/summary
func (dc *DashboardController) Summary(c *gin.Context) {
	userID := c.GetUint("userID")

	stats, err := dc.Dashboard.Stats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	projects, err := dc.Dashboard.RecentProjects(userID, 3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	activities := dc.Dashboard.RecentActivities(userID, 10)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"stats":           stats,
		"recent_projects": projects,
		"activities":      activities,
	})
}
