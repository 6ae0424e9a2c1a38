package services

import (
	"fmt"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"gorm.io/gorm"
)

var validActionStatuses = map[string]bool{
	"planned": true, "in_progress": true, "completed": true, "cancelled": true,
}

var validPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "urgent": true,
}

type ActionService struct {
	db *gorm.DB
}

func NewActionService(db *gorm.DB) *ActionService {
	return &ActionService{db: db}
}

func (s *ActionService) ListForProject(projectID uint) ([]models.RestorationAction, error) {
	var actions []models.RestorationAction
	err := s.db.Where("project_id = ?", projectID).
		Order("FIELD(priority, 'urgent', 'high', 'medium', 'low'), created_at DESC").
		Find(&actions).Error
	return actions, err
}

type CreateActionInput struct {
	ActionType   string  `json:"action_type" binding:"required"`
	Description  string  `json:"description"`
	TargetArea   float64 `json:"target_area"`
	Priority     string  `json:"priority"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	CostEstimate float64 `json:"cost_estimate"`
	AssignedTo   string  `json:"assigned_to"`
	Notes        string  `json:"notes"`
}

func (s *ActionService) Create(projectID uint, in CreateActionInput) (*models.RestorationAction, error) {
	if in.Priority == "" {
		in.Priority = "medium"
	}
	if !validPriorities[in.Priority] {
		return nil, fmt.Errorf("invalid priority %q", in.Priority)
	}

	a := &models.RestorationAction{
		ProjectID:    projectID,
		ActionType:   in.ActionType,
		Description:  in.Description,
		TargetArea:   in.TargetArea,
		Status:       "planned",
		Priority:     in.Priority,
		CostEstimate: in.CostEstimate,
		AssignedTo:   in.AssignedTo,
		Notes:        in.Notes,
	}
	if in.StartDate != nil {
		t, err := time.Parse("2006-01-02", *in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		a.StartDate = &t
	}
	if in.EndDate != nil {
		t, err := time.Parse("2006-01-02", *in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		a.EndDate = &t
	}

	if err := s.db.Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

type UpdateActionInput struct {
	Status        *string  `json:"status"`
	CompletionPct *int     `json:"completion_percentage"`
	ActualCost    *float64 `json:"actual_cost"`
	Notes         *string  `json:"notes"`
}

// Update adjusts status and completion. Reaching 100% marks the action
// completed even when the caller only sent the percentage.
func (s *ActionService) Update(actionID uint, in UpdateActionInput) (*models.RestorationAction, error) {
	var a models.RestorationAction
	if err := s.db.First(&a, actionID).Error; err != nil {
		return nil, err
	}

	if in.Status != nil {
		if !validActionStatuses[*in.Status] {
			return nil, fmt.Errorf("invalid status %q", *in.Status)
		}
		a.Status = *in.Status
	}
	if in.CompletionPct != nil {
		if *in.CompletionPct < 0 || *in.CompletionPct > 100 {
			return nil, fmt.Errorf("completion_percentage must be between 0 and 100")
		}
		a.CompletionPct = *in.CompletionPct
		if a.CompletionPct >= 100 {
			a.Status = "completed"
		}
	}
	if in.ActualCost != nil {
		a.ActualCost = *in.ActualCost
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}

	if err := s.db.Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Project returns the action's parent project ID for ownership checks.
func (s *ActionService) ProjectOf(actionID uint) (uint, error) {
	var a models.RestorationAction
	if err := s.db.Select("project_id").First(&a, actionID).Error; err != nil {
		return 0, err
	}
	return a.ProjectID, nil
}
