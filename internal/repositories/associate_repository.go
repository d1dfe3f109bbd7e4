package repositories

import (
	"errors"

	"github.com/archnet-io/backend/internal/models"
	"gorm.io/gorm"
)

// AssociateRepository defines the interface for the one-directional saved
// contact relation
type AssociateRepository interface {
	AddAssociate(assoc *models.Associate) error
	RemoveAssociate(ownerID, targetID uint) error
	IsAssociate(ownerID, targetID uint) (bool, error)
	ListAssociates(ownerID uint) ([]models.Associate, error)
}

// PostgresAssociateRepository implements AssociateRepository for PostgreSQL
type PostgresAssociateRepository struct {
	db *gorm.DB
}

// NewPostgresAssociateRepository creates a new PostgresAssociateRepository
func NewPostgresAssociateRepository(db *gorm.DB) *PostgresAssociateRepository {
	return &PostgresAssociateRepository{db: db}
}

// AddAssociate stores a directed associate edge. The unique pair index backs
// the conflict error under concurrent adds.
func (r *PostgresAssociateRepository) AddAssociate(assoc *models.Associate) error {
	if assoc.OwnerID == assoc.TargetID {
		return ErrInvalidTarget
	}
	if err := r.db.Create(assoc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyAssociate
		}
		return err
	}
	return nil
}

// RemoveAssociate deletes a directed associate edge. Idempotent: removing an
// absent edge succeeds.
func (r *PostgresAssociateRepository) RemoveAssociate(ownerID, targetID uint) error {
	return r.db.Where("owner_id = ? AND target_id = ?", ownerID, targetID).
		Delete(&models.Associate{}).Error
}

// IsAssociate reports whether target is in owner's associate list
func (r *PostgresAssociateRepository) IsAssociate(ownerID, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Associate{}).
		Where("owner_id = ? AND target_id = ?", ownerID, targetID).
		Count(&count).Error
	return count > 0, err
}

// ListAssociates retrieves a user's associate edges, newest first
func (r *PostgresAssociateRepository) ListAssociates(ownerID uint) ([]models.Associate, error) {
	var edges []models.Associate
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}
