package repositories

import (
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReports() ([]models.Report, error)
}

type postgresReportRepository struct {
	db *gorm.DB
}

func NewPostgresReportRepository(db *gorm.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

// GetReports retrieves all reports, newest first
func (r *postgresReportRepository) GetReports() ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
