package repositories

import (
	"errors"

	"github.com/archnet-io/backend/internal/models"
	"gorm.io/gorm"
)

// JobSeekerRepository defines the interface for job-seeker extension rows
type JobSeekerRepository interface {
	CreateJobSeeker(seeker *models.JobSeeker) error
	GetByUserID(userID uint) (*models.JobSeeker, error)
	UpdateJobSeeker(seeker *models.JobSeeker) error
}

// PostgresJobSeekerRepository implements JobSeekerRepository for PostgreSQL
type PostgresJobSeekerRepository struct {
	db *gorm.DB
}

// NewPostgresJobSeekerRepository creates a new PostgresJobSeekerRepository
func NewPostgresJobSeekerRepository(db *gorm.DB) *PostgresJobSeekerRepository {
	return &PostgresJobSeekerRepository{db: db}
}

// CreateJobSeeker creates a new job-seeker row
func (r *PostgresJobSeekerRepository) CreateJobSeeker(seeker *models.JobSeeker) error {
	return r.db.Create(seeker).Error
}

// GetByUserID retrieves the job-seeker row for a user, if any
func (r *PostgresJobSeekerRepository) GetByUserID(userID uint) (*models.JobSeeker, error) {
	var seeker models.JobSeeker
	if err := r.db.Where("user_id = ?", userID).First(&seeker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &seeker, nil
}

// UpdateJobSeeker updates an existing job-seeker row
func (r *PostgresJobSeekerRepository) UpdateJobSeeker(seeker *models.JobSeeker) error {
	return r.db.Save(seeker).Error
}
