package services

import (
	"fmt"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"gorm.io/gorm"
)

// Notification types. Each type carries a fixed icon, color, priority and
// default title so the frontend renders them consistently.
const (
	NotifyProjectCreated   = "project_created"
	NotifyProjectUpdated   = "project_updated"
	NotifyStatusChanged    = "status_changed"
	NotifyProjectCompleted = "project_completed"
	NotifyProjectDeleted   = "project_deleted"
	NotifyProgressUpdated  = "progress_updated"
	NotifyAnalysisComplete = "analysis_complete"
	NotifyMilestoneReached = "milestone_reached"
	NotifySystem           = "system"
)

type notificationConfig struct {
	Icon     string
	Color    string
	Title    string
	Priority string
}

var notificationTypes = map[string]notificationConfig{
	NotifyProjectCreated:   {Icon: "check-circle", Color: "#10b981", Title: "Project Created", Priority: "high"},
	NotifyProjectUpdated:   {Icon: "edit", Color: "#3b82f6", Title: "Project Updated", Priority: "low"},
	NotifyStatusChanged:    {Icon: "exchange-alt", Color: "#f59e0b", Title: "Status Changed", Priority: "medium"},
	NotifyProjectCompleted: {Icon: "trophy", Color: "#8b5cf6", Title: "Project Completed", Priority: "high"},
	NotifyProjectDeleted:   {Icon: "trash", Color: "#ef4444", Title: "Project Deleted", Priority: "medium"},
	NotifyProgressUpdated:  {Icon: "chart-line", Color: "#06b6d4", Title: "Progress Updated", Priority: "low"},
	NotifyAnalysisComplete: {Icon: "brain", Color: "#8b5cf6", Title: "Analysis Complete", Priority: "high"},
	NotifyMilestoneReached: {Icon: "flag-checkered", Color: "#ec4899", Title: "Milestone Reached", Priority: "high"},
	NotifySystem:           {Icon: "info-circle", Color: "#6b7280", Title: "System Notification", Priority: "low"},
}

// NotificationConfig resolves a type to its presentation defaults,
// falling back to the system type for unknown names.
func NotificationConfig(typ string) notificationConfig {
	if cfg, ok := notificationTypes[typ]; ok {
		return cfg
	}
	return notificationTypes[NotifySystem]
}

type NotificationService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

func NewNotificationService(db *gorm.DB, hub *RealtimeHub, push *PushService) *NotificationService {
	return &NotificationService{db: db, hub: hub, push: push}
}

// Preferences returns the user's preference row, creating it with
// defaults on first access.
func (s *NotificationService) Preferences(userID uint) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	err := s.db.Where("user_id = ?", userID).First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		pref = models.NotificationPreference{
			UserID:           userID,
			Email:            true,
			Push:             true,
			ProjectCreated:   true,
			ProjectUpdated:   true,
			StatusChanged:    true,
			ProjectCompleted: true,
			ProgressUpdated:  false,
			AnalysisComplete: true,
			MilestoneReached: true,
		}
		if err := s.db.Create(&pref).Error; err != nil {
			return nil, err
		}
		return &pref, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *NotificationService) allowed(pref *models.NotificationPreference, typ string) bool {
	switch typ {
	case NotifyProjectCreated:
		return pref.ProjectCreated
	case NotifyProjectUpdated:
		return pref.ProjectUpdated
	case NotifyStatusChanged:
		return pref.StatusChanged
	case NotifyProjectCompleted:
		return pref.ProjectCompleted
	case NotifyProgressUpdated:
		return pref.ProgressUpdated
	case NotifyAnalysisComplete:
		return pref.AnalysisComplete
	case NotifyMilestoneReached:
		return pref.MilestoneReached
	default:
		// project_deleted and system are always delivered
		return true
	}
}

// Notify creates a notification for the user, honoring their per-type
// preferences, then fans it out to connected websockets. High-priority
// notifications also go out as a push. Safe to call anywhere; delivery
// beyond the DB row is best-effort.
func (s *NotificationService) Notify(userID uint, typ, message string, projectID *uint, link string) (*models.Notification, error) {
	pref, err := s.Preferences(userID)
	if err == nil && !s.allowed(pref, typ) {
		return nil, nil
	}

	cfg := NotificationConfig(typ)
	n := &models.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     cfg.Title,
		Message:   message,
		Icon:      cfg.Icon,
		Color:     cfg.Color,
		Priority:  cfg.Priority,
		Link:      link,
		ProjectID: projectID,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(n).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": n,
		})
	}
	if s.push != nil && cfg.Priority == "high" {
		data := map[string]string{"type": typ, "notificationId": fmt.Sprintf("%d", n.ID)}
		if projectID != nil {
			data["projectId"] = fmt.Sprintf("%d", *projectID)
		}
		s.push.PushToUser(userID, cfg.Title, message, data)
	}
	return n, nil
}

// List returns the latest 50 non-archived notifications plus the unread count.
func (s *NotificationService) List(userID uint) ([]models.Notification, int64, error) {
	var items []models.Notification
	err := s.db.Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").Limit(50).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	count, err := s.UnreadCount(userID)
	return items, count, err
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_archived = ?", userID, false, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification, or all of the user's unread ones when
// id is nil.
func (s *NotificationService) MarkRead(userID uint, id *uint) error {
	now := time.Now()
	q := s.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false)
	if id != nil {
		q = q.Where("id = ?", *id)
	}
	return q.Updates(map[string]any{"is_read": true, "read_at": now}).Error
}

// Archive hides one notification, or all read ones when id is nil.
func (s *NotificationService) Archive(userID uint, id *uint) error {
	q := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if id != nil {
		q = q.Where("id = ?", *id)
	} else {
		q = q.Where("is_read = ?", true)
	}
	return q.Update("is_archived", true).Error
}

func (s *NotificationService) Delete(userID, id uint) error {
	res := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type PreferenceUpdate struct {
	Email            *bool `json:"email_notifications"`
	Push             *bool `json:"push_notifications"`
	ProjectCreated   *bool `json:"project_created"`
	ProjectUpdated   *bool `json:"project_updated"`
	StatusChanged    *bool `json:"status_changed"`
	ProjectCompleted *bool `json:"project_completed"`
	ProgressUpdated  *bool `json:"progress_updated"`
	AnalysisComplete *bool `json:"analysis_complete"`
	MilestoneReached *bool `json:"milestone_reached"`
}

func (s *NotificationService) UpdatePreferences(userID uint, upd PreferenceUpdate) (*models.NotificationPreference, error) {
	pref, err := s.Preferences(userID)
	if err != nil {
		return nil, err
	}
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&pref.Email, upd.Email)
	apply(&pref.Push, upd.Push)
	apply(&pref.ProjectCreated, upd.ProjectCreated)
	apply(&pref.ProjectUpdated, upd.ProjectUpdated)
	apply(&pref.StatusChanged, upd.StatusChanged)
	apply(&pref.ProjectCompleted, upd.ProjectCompleted)
	apply(&pref.ProgressUpdated, upd.ProgressUpdated)
	apply(&pref.AnalysisComplete, upd.AnalysisComplete)
	apply(&pref.MilestoneReached, upd.MilestoneReached)
	if err := s.db.Save(pref).Error; err != nil {
		return nil, err
	}
	return pref, nil
}
