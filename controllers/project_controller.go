package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/StevenOyar/RegenArdhi/services"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	Projects *services.ProjectService
	Analysis *services.AnalysisService
	Geo      *services.GeoService
}

func NewProjectController(projects *services.ProjectService, analysis *services.AnalysisService, geo *services.GeoService) *ProjectController {
	return &ProjectController{Projects: projects, Analysis: analysis, Geo: geo}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// GET /projects/api/list
func (pc *ProjectController) List(c *gin.Context) {
	userID := c.GetUint("userID")

	projects, err := pc.Projects.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

// POST /projects/create
func (pc *ProjectController) Create(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := pc.Projects.Create(userID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "project": project})
}

// GET /projects/:id
func (pc *ProjectController) Get(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := pc.Projects.Get(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

// PUT /projects/:id
func (pc *ProjectController) Update(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := pc.Projects.Update(userID, id, input)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

// DELETE /projects/:id
func (pc *ProjectController) Delete(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := pc.Projects.Delete(userID, id); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "project deleted"})
}

// POST /projects/:id/reanalyze
func (pc *ProjectController) Reanalyze(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := pc.Projects.Reanalyze(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

type progressInput struct {
	Progress *int `json:"progress" binding:"required"`
}

// POST /projects/:id/update-progress
func (pc *ProjectController) UpdateProgress(c *gin.Context) {
	userID := c.GetUint("userID")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input progressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := pc.Projects.UpdateProgress(userID, id, *input.Progress)
	if err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

type analyzeInput struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
	AreaHa    float64  `json:"area_hectares" binding:"required,gt=0"`
}

// POST /projects/api/analyze — pre-create preview, nothing is persisted.
// Accepts either coordinates or a free-form address.
func (pc *ProjectController) Analyze(c *gin.Context) {
	var input analyzeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var lat, lon float64
	switch {
	case input.Latitude != nil && input.Longitude != nil:
		lat, lon = *input.Latitude, *input.Longitude
	case input.Address != "":
		loc, err := pc.Geo.Geocode(input.Address)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lat, lon = loc.Latitude, loc.Longitude
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude/longitude or address required"})
		return
	}

	analysis := pc.Analysis.AnalyzeLocation(lat, lon, input.AreaHa)
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}
