package models

import (
	"time"

	"gorm.io/gorm"
)

// Connection request lifecycle. A request leaves "pending" exactly once and
// never returns to it.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// ConnectionRequest represents a proposed connection between two users. Rows
// are never deleted; resolved requests stay as an audit trail.
type ConnectionRequest struct {
	gorm.Model  `json:"-"`
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index:idx_recipient_status"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'pending';index:idx_recipient_status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Connection is one direction of an accepted, symmetric connection. Accepting
// a request writes two rows, (A,B) and (B,A), in one transaction.
type Connection struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_peer"`
	PeerID    uint      `json:"peer_id" gorm:"index;uniqueIndex:idx_user_peer"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateConnectionRequest defines the request body for sending a connection request
type CreateConnectionRequest struct {
	RecipientID uint `json:"recipient_id" validate:"required"`
}

// RespondConnectionRequest defines the request body for accepting/rejecting a request
type RespondConnectionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

// IncomingRequest is a pending request enriched with the sender's public profile
type IncomingRequest struct {
	ConnectionRequest
	Sender UserSummary `json:"sender"`
}
