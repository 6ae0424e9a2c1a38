package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"gorm.io/gorm"
)

// DashboardStats is the aggregate view across all of a user's projects.
type DashboardStats struct {
	TotalProjects        int64   `json:"total_projects"`
	ActiveProjects       int64   `json:"active_projects"`
	PlanningProjects     int64   `json:"planning_projects"`
	CompletedProjects    int64   `json:"completed_projects"`
	PausedProjects       int64   `json:"paused_projects"`
	TotalArea            float64 `json:"total_area"`
	TotalLocations       int64   `json:"total_locations"`
	AvgNDVI              float64 `json:"avg_ndvi"`
	AvgProgress          float64 `json:"avg_progress"`
	NewProjectsThisMonth int64   `json:"new_projects_this_month"`
	HealthScore          int     `json:"health_score"`
	VegetationCover      int     `json:"vegetation_cover"`
	SoilQuality          int     `json:"soil_quality"`
	WaterRetention       int     `json:"water_retention"`
	TotalReports         int64   `json:"total_reports"`
	RecentReports        int64   `json:"recent_reports"`
}

type Activity struct {
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	timestamp time.Time `json:"-"`
}

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// HealthScore computes the weighted land health score from last-30-day
// monitoring averages: NDVI 40%, soil moisture 30%, canopy 30%. Returns
// the neutral default 78 when no monitoring data exists yet.
func HealthScore(avgNDVI, avgMoisture, avgCanopy float64) int {
	if avgNDVI <= 0 && avgMoisture <= 0 && avgCanopy <= 0 {
		return 78
	}
	score := avgNDVI*100*0.4 + avgMoisture*0.3 + avgCanopy*0.3
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return int(score)
}

func metricPct(value float64, scale float64) int {
	v := int(value * scale)
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func (s *DashboardService) Stats(userID uint) (*DashboardStats, error) {
	st := &DashboardStats{}

	type projectAgg struct {
		Total     int64
		Active    int64
		Planning  int64
		Completed int64
		Paused    int64
		Area      float64
		Locations int64
		NDVI      float64
		Progress  float64
	}
	var pa projectAgg
	err := s.db.Model(&models.Project{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END) AS active,
			SUM(CASE WHEN status = 'planning' THEN 1 ELSE 0 END) AS planning,
			SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed,
			SUM(CASE WHEN status = 'paused' THEN 1 ELSE 0 END) AS paused,
			COALESCE(SUM(area_ha),0) AS area,
			COUNT(DISTINCT location) AS locations,
			COALESCE(AVG(vegetation_index),0) AS ndvi,
			COALESCE(AVG(progress_pct),0) AS progress`).
		Where("user_id = ?", userID).Scan(&pa).Error
	if err != nil {
		return nil, err
	}
	st.TotalProjects = pa.Total
	st.ActiveProjects = pa.Active
	st.PlanningProjects = pa.Planning
	st.CompletedProjects = pa.Completed
	st.PausedProjects = pa.Paused
	st.TotalArea = pa.Area
	st.TotalLocations = pa.Locations
	st.AvgNDVI = pa.NDVI
	st.AvgProgress = pa.Progress

	monthAgo := time.Now().AddDate(0, 0, -30)
	s.db.Model(&models.Project{}).
		Where("user_id = ? AND created_at >= ?", userID, monthAgo).
		Count(&st.NewProjectsThisMonth)

	type healthAgg struct {
		NDVI     float64
		Moisture float64
		Canopy   float64
	}
	var ha healthAgg
	s.db.Model(&models.MonitoringRecord{}).
		Select("COALESCE(AVG(monitoring_records.ndvi),0) AS ndvi, COALESCE(AVG(monitoring_records.soil_moisture),0) AS moisture, COALESCE(AVG(monitoring_records.canopy_cover),0) AS canopy").
		Joins("JOIN projects ON projects.id = monitoring_records.project_id").
		Where("projects.user_id = ? AND monitoring_records.recorded_at >= ?", userID, monthAgo).
		Scan(&ha)

	st.HealthScore = HealthScore(ha.NDVI, ha.Moisture, ha.Canopy)
	st.VegetationCover = metricPct(ha.NDVI, 100)
	st.SoilQuality = metricPct(ha.Moisture, 1)
	st.WaterRetention = metricPct(ha.Canopy, 1)

	s.db.Model(&models.CommunityReport{}).
		Joins("JOIN projects ON projects.id = community_reports.project_id").
		Where("projects.user_id = ?", userID).
		Count(&st.TotalReports)
	s.db.Model(&models.CommunityReport{}).
		Joins("JOIN projects ON projects.id = community_reports.project_id").
		Where("projects.user_id = ? AND community_reports.created_at >= ?", userID, monthAgo).
		Count(&st.RecentReports)

	return st, nil
}

func (s *DashboardService) RecentProjects(userID uint, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = 3
	}
	var projects []models.Project
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&projects).Error
	return projects, err
}

// RecentActivities merges the latest monitoring updates, project
// creations, and community report activity into one feed.
func (s *DashboardService) RecentActivities(userID uint, limit int) []Activity {
	if limit <= 0 {
		limit = 10
	}
	var activities []Activity
	now := time.Now()

	type monitoringRow struct {
		RecordedAt  time.Time
		ProjectName string
	}
	var updates []monitoringRow
	s.db.Model(&models.MonitoringRecord{}).
		Select("monitoring_records.recorded_at, projects.name AS project_name").
		Joins("JOIN projects ON projects.id = monitoring_records.project_id").
		Where("projects.user_id = ?", userID).
		Order("monitoring_records.recorded_at DESC").Limit(3).
		Scan(&updates)
	for _, u := range updates {
		activities = append(activities, Activity{
			Type: "monitoring_update", Icon: "plus", Color: "green",
			Message:   fmt.Sprintf("New monitoring data added to %s", u.ProjectName),
			Time:      RelativeTime(u.RecordedAt, now),
			timestamp: u.RecordedAt,
		})
	}

	var projects []models.Project
	s.db.Select("name, created_at").Where("user_id = ?", userID).
		Order("created_at DESC").Limit(2).Find(&projects)
	for _, p := range projects {
		activities = append(activities, Activity{
			Type: "project_created", Icon: "seedling", Color: "blue",
			Message:   fmt.Sprintf("New project created: %s", p.Name),
			Time:      RelativeTime(p.CreatedAt, now),
			timestamp: p.CreatedAt,
		})
	}

	type reportRow struct {
		ProjectName string
		ReportCount int64
		LatestAt    time.Time
	}
	var reports []reportRow
	weekAgo := now.AddDate(0, 0, -7)
	s.db.Model(&models.CommunityReport{}).
		Select("projects.name AS project_name, COUNT(*) AS report_count, MAX(community_reports.created_at) AS latest_at").
		Joins("JOIN projects ON projects.id = community_reports.project_id").
		Where("projects.user_id = ? AND community_reports.created_at >= ?", userID, weekAgo).
		Group("projects.id, projects.name").
		Order("latest_at DESC").Limit(2).
		Scan(&reports)
	for _, r := range reports {
		activities = append(activities, Activity{
			Type: "community_report", Icon: "users", Color: "orange",
			Message:   fmt.Sprintf("%d community reports for %s", r.ReportCount, r.ProjectName),
			Time:      RelativeTime(r.LatestAt, now),
			timestamp: r.LatestAt,
		})
	}

	if len(activities) == 0 {
		return []Activity{{
			Type: "info", Icon: "info-circle", Color: "blue",
			Message: "Welcome to RegenArdhi! Start by creating your first project.",
			Time:    "just now",
		}}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].timestamp.After(activities[j].timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities
}

// RelativeTime renders timestamps the way the activity feed shows them.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "recently"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		return fmt.Sprintf("%d minute%s ago", m, plural(m))
	case d < 24*time.Hour:
		h := int(d.Hours())
		return fmt.Sprintf("%d hour%s ago", h, plural(h))
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		return t.Format("Jan 02, 2006")
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
