package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/StevenOyar/RegenArdhi/services"

	"github.com/gin-gonic/gin"
)

type MonitoringController struct {
	Projects   *services.ProjectService
	Monitoring *services.MonitoringService
	Reports    *services.ReportService
	Actions    *services.ActionService
}

func NewMonitoringController(projects *services.ProjectService, monitoring *services.MonitoringService, reports *services.ReportService, actions *services.ActionService) *MonitoringController {
	return &MonitoringController{Projects: projects, Monitoring: monitoring, Reports: reports, Actions: actions}
}

// ownedProject resolves :id and enforces ownership; replies 404 itself.
func (mc *MonitoringController) ownedProject(c *gin.Context) (uint, bool) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return 0, false
	}
	if _, err := mc.Projects.Get(userID, id); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return 0, false
	}
	return id, true
}

// GET /monitoring/api/project/:id/data
func (mc *MonitoringController) Data(c *gin.Context) {
	projectID, ok := mc.ownedProject(c)
	if !ok {
		return
	}

	latest, history, err := mc.Monitoring.Latest(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "latest": latest, "history": history})
}

// POST /monitoring/api/project/:id/update
func (mc *MonitoringController) Update(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := mc.Projects.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	record, err := mc.Monitoring.Update(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "record": record})
}

type generateHistoryInput struct {
	Days int `json:"days"`
}

// POST /monitoring/api/project/:id/generate-history
func (mc *MonitoringController) GenerateHistory(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := mc.Projects.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var input generateHistoryInput
	_ = c.ShouldBindJSON(&input) // body is optional, defaults to 30 days

	created, err := mc.Monitoring.GenerateHistory(project, input.Days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("Generated %d days of history", created)})
}

// GET /monitoring/api/project/:id/reports
func (mc *MonitoringController) ListReports(c *gin.Context) {
	projectID, ok := mc.ownedProject(c)
	if !ok {
		return
	}

	reports, err := mc.Reports.ListForProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reports})
}

// POST /monitoring/api/project/:id/report
func (mc *MonitoringController) SubmitReport(c *gin.Context) {
	projectID, ok := mc.ownedProject(c)
	if !ok {
		return
	}

	var input services.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := mc.Reports.Create(projectID, c.GetUint("userID"), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "report": report})
}

// GET /monitoring/api/project/:id/actions
func (mc *MonitoringController) ListActions(c *gin.Context) {
	projectID, ok := mc.ownedProject(c)
	if !ok {
		return
	}

	actions, err := mc.Actions.ListForProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "actions": actions})
}

// POST /monitoring/api/project/:id/action
func (mc *MonitoringController) AddAction(c *gin.Context) {
	projectID, ok := mc.ownedProject(c)
	if !ok {
		return
	}

	var input services.CreateActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := mc.Actions.Create(projectID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "action": action})
}

// PUT /monitoring/api/action/:id
func (mc *MonitoringController) UpdateAction(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	projectID, err := mc.Actions.ProjectOf(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
		return
	}
	if _, err := mc.Projects.Get(userID, projectID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
		return
	}

	var input services.UpdateActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := mc.Actions.Update(id, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "action": action})
}
