package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"gorm.io/gorm"
)

var ErrNotOwner = errors.New("project not found or not owned by user")

var validProjectTypes = map[string]bool{
	"reforestation":     true,
	"soil-conservation": true,
	"watershed":         true,
	"agroforestry":      true,
}

func ValidProjectType(t string) bool { return validProjectTypes[t] }

var validProjectStatuses = map[string]bool{
	models.ProjectStatusPlanning:  true,
	models.ProjectStatusActive:    true,
	models.ProjectStatusCompleted: true,
	models.ProjectStatusPaused:    true,
}

type ProjectService struct {
	db       *gorm.DB
	analysis *AnalysisService
	notify   *NotificationService
}

func NewProjectService(db *gorm.DB, analysis *AnalysisService, notify *NotificationService) *ProjectService {
	return &ProjectService{db: db, analysis: analysis, notify: notify}
}

func (s *ProjectService) List(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// Get loads a project and enforces ownership.
func (s *ProjectService) Get(userID, projectID uint) (*models.Project, error) {
	var p models.Project
	err := s.db.Where("id = ? AND user_id = ?", projectID, userID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotOwner
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type CreateProjectInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ProjectType string  `json:"project_type" binding:"required"`
	AreaHa      float64 `json:"area_hectares" binding:"required,gt=0"`
	Latitude    float64 `json:"latitude" binding:"required"`
	Longitude   float64 `json:"longitude" binding:"required"`
}

// Create runs the land analysis for the plot and persists the project
// with its snapshot and recommendations filled in.
func (s *ProjectService) Create(userID uint, in CreateProjectInput) (*models.Project, error) {
	if !ValidProjectType(in.ProjectType) {
		return nil, fmt.Errorf("invalid project type %q", in.ProjectType)
	}

	a := s.analysis.AnalyzeLocation(in.Latitude, in.Longitude, in.AreaHa)
	now := time.Now()

	p := &models.Project{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		ProjectType: in.ProjectType,
		AreaHa:      in.AreaHa,
		Location:    a.LocationName,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,

		SoilType:        a.SoilType,
		SoilPH:          a.SoilPH,
		SoilFertility:   a.SoilFertility,
		ClimateZone:     a.ClimateZone,
		AnnualRainfall:  a.AnnualRainfall,
		Temperature:     a.Temperature,
		Humidity:        int(a.Humidity),
		Elevation:       a.Elevation,
		VegetationIndex: a.NDVI,
		Degradation:     a.Degradation,

		RecommendedCrops:      a.Crops,
		RecommendedTrees:      a.Trees,
		RestorationTechniques: a.Techniques,
		TimelineMonths:        a.TimelineMonths,
		EstimatedBudget:       a.TotalBudget,

		Status:       models.ProjectStatusPlanning,
		LastAnalyzed: &now,
	}

	if err := s.db.Create(p).Error; err != nil {
		return nil, err
	}

	link := fmt.Sprintf("/projects/%d", p.ID)
	_, _ = s.notify.Notify(userID, NotifyProjectCreated,
		fmt.Sprintf("Your project %q in %s is ready for planning.", p.Name, p.Location), &p.ID, link)
	_, _ = s.notify.Notify(userID, NotifyAnalysisComplete,
		fmt.Sprintf("Land analysis for %q found %s degradation with NDVI %.2f.", p.Name, p.Degradation, p.VegetationIndex), &p.ID, link)

	return p, nil
}

type UpdateProjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ProjectType *string `json:"project_type"`
	Status      *string `json:"status"`
	StartDate   *string `json:"start_date"` // YYYY-MM-DD
	EndDate     *string `json:"end_date"`
}

func (s *ProjectService) Update(userID, projectID uint, in UpdateProjectInput) (*models.Project, error) {
	p, err := s.Get(userID, projectID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ProjectType != nil {
		if !ValidProjectType(*in.ProjectType) {
			return nil, fmt.Errorf("invalid project type %q", *in.ProjectType)
		}
		p.ProjectType = *in.ProjectType
	}

	statusChanged := false
	oldStatus := p.Status
	if in.Status != nil && *in.Status != p.Status {
		if !validProjectStatuses[*in.Status] {
			return nil, fmt.Errorf("invalid status %q", *in.Status)
		}
		p.Status = *in.Status
		statusChanged = true
	}

	if in.StartDate != nil {
		t, err := time.Parse("2006-01-02", *in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		p.StartDate = &t
	}
	if in.EndDate != nil {
		t, err := time.Parse("2006-01-02", *in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		p.EndDate = &t
	}

	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}

	link := fmt.Sprintf("/projects/%d", p.ID)
	if statusChanged {
		_, _ = s.notify.Notify(userID, NotifyStatusChanged,
			fmt.Sprintf("%q moved from %s to %s.", p.Name, oldStatus, p.Status), &p.ID, link)
		if p.Status == models.ProjectStatusCompleted {
			_, _ = s.notify.Notify(userID, NotifyProjectCompleted,
				fmt.Sprintf("Congratulations, %q is complete!", p.Name), &p.ID, link)
		}
	} else {
		_, _ = s.notify.Notify(userID, NotifyProjectUpdated,
			fmt.Sprintf("%q was updated.", p.Name), &p.ID, link)
	}

	return p, nil
}

// Delete removes the project and every dependent row.
func (s *ProjectService) Delete(userID, projectID uint) error {
	p, err := s.Get(userID, projectID)
	if err != nil {
		return err
	}
	name := p.Name

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.MonitoringRecord{},
			&models.CommunityReport{},
			&models.RestorationAction{},
			&models.ChatMessage{},
		} {
			if err := tx.Where("project_id = ?", projectID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(p).Error
	})
	if err != nil {
		return err
	}

	_, _ = s.notify.Notify(userID, NotifyProjectDeleted,
		fmt.Sprintf("%q and all of its data were deleted.", name), nil, "/projects")
	return nil
}

// Reanalyze re-runs the land analysis and refreshes the snapshot.
func (s *ProjectService) Reanalyze(userID, projectID uint) (*models.Project, error) {
	p, err := s.Get(userID, projectID)
	if err != nil {
		return nil, err
	}

	a := s.analysis.AnalyzeLocation(p.Latitude, p.Longitude, p.AreaHa)
	now := time.Now()

	p.Location = a.LocationName
	p.SoilType = a.SoilType
	p.SoilPH = a.SoilPH
	p.SoilFertility = a.SoilFertility
	p.ClimateZone = a.ClimateZone
	p.AnnualRainfall = a.AnnualRainfall
	p.Temperature = a.Temperature
	p.Humidity = int(a.Humidity)
	p.Elevation = a.Elevation
	p.VegetationIndex = a.NDVI
	p.Degradation = a.Degradation
	p.RecommendedCrops = a.Crops
	p.RecommendedTrees = a.Trees
	p.RestorationTechniques = a.Techniques
	p.TimelineMonths = a.TimelineMonths
	p.EstimatedBudget = a.TotalBudget
	p.LastAnalyzed = &now

	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}

	_, _ = s.notify.Notify(userID, NotifyAnalysisComplete,
		fmt.Sprintf("Fresh analysis for %q: %s degradation, NDVI %.2f.", p.Name, p.Degradation, p.VegetationIndex),
		&p.ID, fmt.Sprintf("/projects/%d", p.ID))
	return p, nil
}

// progressTransition derives the status a progress value implies and
// which extra notifications it earns. 100 completes the project (once),
// anything above zero activates it regardless of the current status,
// and zero leaves the status alone. Milestones fire only when the
// percentage actually moved onto 25, 50 or 75.
func progressTransition(status string, prevPct, pct int) (newStatus string, completed, milestone bool) {
	newStatus = status
	switch {
	case pct >= 100:
		completed = status != models.ProjectStatusCompleted
		newStatus = models.ProjectStatusCompleted
	case pct > 0:
		newStatus = models.ProjectStatusActive
	}
	milestone = pct != prevPct && (pct == 25 || pct == 50 || pct == 75)
	return newStatus, completed, milestone
}

// UpdateProgress sets the completion percentage, derives the status and
// raises the progress notifications.
func (s *ProjectService) UpdateProgress(userID, projectID uint, progress int) (*models.Project, error) {
	if progress < 0 || progress > 100 {
		return nil, errors.New("progress must be between 0 and 100")
	}

	p, err := s.Get(userID, projectID)
	if err != nil {
		return nil, err
	}

	newStatus, completed, milestone := progressTransition(p.Status, p.ProgressPct, progress)
	p.ProgressPct = progress
	p.Status = newStatus

	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}

	link := fmt.Sprintf("/projects/%d", p.ID)
	_, _ = s.notify.Notify(userID, NotifyProgressUpdated,
		fmt.Sprintf("%q is now at %d%%.", p.Name, progress), &p.ID, link)
	if milestone {
		_, _ = s.notify.Notify(userID, NotifyMilestoneReached,
			fmt.Sprintf("%q reached %d%% completion.", p.Name, progress), &p.ID, link)
	}
	if completed {
		_, _ = s.notify.Notify(userID, NotifyProjectCompleted,
			fmt.Sprintf("Congratulations, %q is complete!", p.Name), &p.ID, link)
	}

	return p, nil
}
