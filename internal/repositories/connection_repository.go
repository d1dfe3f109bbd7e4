package repositories

import (
	"errors"

	"github.com/archnet-io/backend/internal/models"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection-request and
// connection data operations
type ConnectionRepository interface {
	CreateRequest(req *models.ConnectionRequest) error
	GetRequestByID(id uint) (*models.ConnectionRequest, error)
	GetPendingForRecipient(userID uint) ([]models.ConnectionRequest, error)
	CountPendingForRecipient(userID uint) (int64, error)
	AcceptRequest(id uint) error
	RejectRequest(id uint) error
	ListConnections(userID uint) ([]models.Connection, error)
	AreConnected(userID, peerID uint) (bool, error)
	RemoveConnection(userID, peerID uint) error
}

// PostgresConnectionRepository implements ConnectionRepository for PostgreSQL
type PostgresConnectionRepository struct {
	db *gorm.DB
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

// PendingPairIndex is the partial unique index guarding the one-active-request
// invariant per unordered pair. Two near-simultaneous requests from opposite
// directions collapse to a single winner at the database.
const PendingPairIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_connection_requests_pending_pair
    ON connection_requests (LEAST(sender_id, recipient_id), GREATEST(sender_id, recipient_id))
    WHERE status = 'pending'`

// CreateRequest creates a new pending connection request. The application
// checks give the caller distinguishable errors; the partial unique index is
// the actual race guard.
func (r *PostgresConnectionRepository) CreateRequest(req *models.ConnectionRequest) error {
	if req.SenderID == req.RecipientID {
		return ErrInvalidTarget
	}

	connected, err := r.AreConnected(req.SenderID, req.RecipientID)
	if err != nil {
		return err
	}
	if connected {
		return ErrAlreadyConnected
	}

	var count int64
	err = r.db.Model(&models.ConnectionRequest{}).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND status = ?",
			req.SenderID, req.RecipientID, req.RecipientID, req.SenderID, models.RequestStatusPending).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicatePending
	}

	req.Status = models.RequestStatusPending
	if err := r.db.Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePending
		}
		return err
	}
	return nil
}

// GetRequestByID retrieves a connection request by ID
func (r *PostgresConnectionRepository) GetRequestByID(id uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetPendingForRecipient retrieves all pending requests addressed to a user,
// newest first
func (r *PostgresConnectionRepository) GetPendingForRecipient(userID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := r.db.Where("recipient_id = ? AND status = ?", userID, models.RequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// CountPendingForRecipient counts pending requests addressed to a user
func (r *PostgresConnectionRepository) CountPendingForRecipient(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ConnectionRequest{}).
		Where("recipient_id = ? AND status = ?", userID, models.RequestStatusPending).
		Count(&count).Error
	return count, err
}

// AcceptRequest flips a pending request to accepted and writes both connection
// rows in a single transaction. The guarded status update makes concurrent
// responses resolve to exactly one winner.
func (r *PostgresConnectionRepository) AcceptRequest(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var req models.ConnectionRequest
		if err := tx.First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.ConnectionRequest{}).
			Where("id = ? AND status = ?", id, models.RequestStatusPending).
			Update("status", models.RequestStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		edges := []models.Connection{
			{UserID: req.SenderID, PeerID: req.RecipientID},
			{UserID: req.RecipientID, PeerID: req.SenderID},
		}
		for _, edge := range edges {
			if err := tx.Create(&edge).Error; err != nil {
				// An existing edge means the pair reconnected while a stale
				// request was resolved; the symmetric invariant still holds.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return err
			}
		}
		return nil
	})
}

// RejectRequest flips a pending request to rejected with no further side effects
func (r *PostgresConnectionRepository) RejectRequest(id uint) error {
	res := r.db.Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", id, models.RequestStatusPending).
		Update("status", models.RequestStatusRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var req models.ConnectionRequest
		if err := r.db.First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return ErrAlreadyProcessed
	}
	return nil
}

// ListConnections retrieves a user's connection edges
func (r *PostgresConnectionRepository) ListConnections(userID uint) ([]models.Connection, error) {
	var edges []models.Connection
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// AreConnected reports whether a connection edge exists between two users
func (r *PostgresConnectionRepository) AreConnected(userID, peerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Connection{}).
		Where("user_id = ? AND peer_id = ?", userID, peerID).
		Count(&count).Error
	return count > 0, err
}

// RemoveConnection deletes both directions of a connection edge. Idempotent.
func (r *PostgresConnectionRepository) RemoveConnection(userID, peerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND peer_id = ?", userID, peerID).
			Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND peer_id = ?", peerID, userID).
			Delete(&models.Connection{}).Error
	})
}
