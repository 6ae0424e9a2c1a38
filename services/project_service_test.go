package services

import (
	"path/filepath"
	"testing"

	"github.com/StevenOyar/RegenArdhi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.NotificationPreference{},
	))
	return db
}

func newTestProjectService(t *testing.T) (*ProjectService, *gorm.DB) {
	db := setupTestDB(t)
	notify := NewNotificationService(db, nil, nil)
	return NewProjectService(db, nil, notify), db
}

func seedProject(t *testing.T, db *gorm.DB, status string, progress int) *models.Project {
	p := &models.Project{
		UserID:      1,
		Name:        "Gully Repair",
		ProjectType: "soil-conservation",
		AreaHa:      3,
		Status:      status,
		ProgressPct: progress,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func notificationCount(t *testing.T, db *gorm.DB, typ string) int64 {
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", 1, typ).Count(&count).Error)
	return count
}

func TestProgressTransition(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		prev, pct  int
		wantStatus string
		completed  bool
		milestone  bool
	}{
		{"planning activates", models.ProjectStatusPlanning, 0, 10, models.ProjectStatusActive, false, false},
		{"paused activates", models.ProjectStatusPaused, 30, 40, models.ProjectStatusActive, false, false},
		{"zero keeps status", models.ProjectStatusPaused, 30, 0, models.ProjectStatusPaused, false, false},
		{"hundred completes", models.ProjectStatusActive, 80, 100, models.ProjectStatusCompleted, true, false},
		{"hundred again stays completed", models.ProjectStatusCompleted, 100, 100, models.ProjectStatusCompleted, false, false},
		{"milestone at 25", models.ProjectStatusActive, 20, 25, models.ProjectStatusActive, false, true},
		{"milestone at 75", models.ProjectStatusActive, 50, 75, models.ProjectStatusActive, false, true},
		{"near miss at 26", models.ProjectStatusActive, 20, 26, models.ProjectStatusActive, false, false},
		{"repeated 50 is no milestone", models.ProjectStatusActive, 50, 50, models.ProjectStatusActive, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, completed, milestone := progressTransition(tt.status, tt.prev, tt.pct)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.completed, completed)
			assert.Equal(t, tt.milestone, milestone)
		})
	}
}

func TestUpdateProgress_ActivatesPausedProject(t *testing.T) {
	svc, db := newTestProjectService(t)
	p := seedProject(t, db, models.ProjectStatusPaused, 0)

	got, err := svc.UpdateProgress(1, p.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusActive, got.Status)
	assert.Equal(t, 40, got.ProgressPct)
}

func TestUpdateProgress_HundredCompletesOnce(t *testing.T) {
	svc, db := newTestProjectService(t)
	p := seedProject(t, db, models.ProjectStatusActive, 80)

	got, err := svc.UpdateProgress(1, p.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, got.Status)
	assert.EqualValues(t, 1, notificationCount(t, db, NotifyProjectCompleted))

	// a second save at 100 must not congratulate again
	_, err = svc.UpdateProgress(1, p.ID, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 1, notificationCount(t, db, NotifyProjectCompleted))
}

func TestUpdateProgress_MilestoneFiresOnlyOnExactNewValues(t *testing.T) {
	svc, db := newTestProjectService(t)
	p := seedProject(t, db, models.ProjectStatusActive, 0)

	_, err := svc.UpdateProgress(1, p.ID, 26)
	require.NoError(t, err)
	assert.EqualValues(t, 0, notificationCount(t, db, NotifyMilestoneReached))

	_, err = svc.UpdateProgress(1, p.ID, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 1, notificationCount(t, db, NotifyMilestoneReached))

	_, err = svc.UpdateProgress(1, p.ID, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 1, notificationCount(t, db, NotifyMilestoneReached))
}

func TestUpdateProgress_Validation(t *testing.T) {
	svc, db := newTestProjectService(t)
	p := seedProject(t, db, models.ProjectStatusActive, 0)

	_, err := svc.UpdateProgress(1, p.ID, 101)
	assert.Error(t, err)

	_, err = svc.UpdateProgress(2, p.ID, 50)
	assert.ErrorIs(t, err, ErrNotOwner)
}
