package services

import (
	"fmt"
	"log"

	"github.com/StevenOyar/RegenArdhi/models"
	"github.com/StevenOyar/RegenArdhi/utils"

	"gorm.io/gorm"
)

var validReportTypes = map[string]bool{
	"vegetation_loss": true,
	"soil_erosion":    true,
	"water_stress":    true,
	"pest_disease":    true,
	"positive_change": true,
}

var validSeverities = map[string]bool{
	"low": true, "medium": true, "high": true, "critical": true,
}

// ReportService handles community field reports. Photos go to S3 and
// are auto-tagged with Rekognition labels for later triage.
type ReportService struct {
	db  *gorm.DB
	rek *RekognitionService
}

func NewReportService(db *gorm.DB, rek *RekognitionService) *ReportService {
	return &ReportService{db: db, rek: rek}
}

// ReportWithReporter joins the reporter's name onto the report row.
type ReportWithReporter struct {
	models.CommunityReport
	ReporterName string `json:"reporter_name"`
}

func (s *ReportService) ListForProject(projectID uint) ([]ReportWithReporter, error) {
	var reports []ReportWithReporter
	err := s.db.Model(&models.CommunityReport{}).
		Select("community_reports.*, CONCAT(users.first_name, ' ', users.last_name) AS reporter_name").
		Joins("JOIN users ON users.id = community_reports.user_id").
		Where("community_reports.project_id = ?", projectID).
		Order("community_reports.created_at DESC").
		Scan(&reports).Error
	return reports, err
}

type CreateReportInput struct {
	ReportType  string   `json:"report_type" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Severity    string   `json:"severity"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ImageData   string   `json:"image_data"` // optional data URI
}

// Create persists a report. Image upload and labeling are best-effort:
// a report with a failed photo still lands, just without the attachment.
func (s *ReportService) Create(projectID, userID uint, in CreateReportInput) (*models.CommunityReport, error) {
	if !validReportTypes[in.ReportType] {
		return nil, fmt.Errorf("invalid report type %q", in.ReportType)
	}
	if in.Severity == "" {
		in.Severity = "medium"
	}
	if !validSeverities[in.Severity] {
		return nil, fmt.Errorf("invalid severity %q", in.Severity)
	}

	r := &models.CommunityReport{
		ProjectID:   projectID,
		UserID:      userID,
		ReportType:  in.ReportType,
		Description: in.Description,
		Severity:    in.Severity,
		Status:      "pending",
	}
	if in.Latitude != nil {
		r.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		r.Longitude = *in.Longitude
	}

	if in.ImageData != "" {
		url, err := utils.UploadBase64ImageToS3(in.ImageData, fmt.Sprintf("project-%d", projectID))
		if err != nil {
			log.Printf("report image upload failed: %v", err)
		} else {
			r.ImageURL = url
			if s.rek != nil {
				labels, err := s.rek.RecognizeLabels(in.ImageData)
				if err != nil {
					log.Printf("report image labeling failed: %v", err)
				} else {
					r.ImageLabels = labels
				}
			}
		}
	}

	if err := s.db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}
