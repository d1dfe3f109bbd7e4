package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two connected users, stored in MongoDB.
// Immutable after creation except for the read flag.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    uint               `bson:"sender_id" json:"sender_id"`
	RecipientID uint               `bson:"recipient_id" json:"recipient_id"`
	Content     string             `bson:"content" json:"content"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required,max=5000"`
}

// Conversation is a derived view: one counterpart and the most recent message
// exchanged with them. Never persisted, recomputed on read.
type Conversation struct {
	Counterpart UserSummary `json:"counterpart"`
	LastMessage Message     `json:"last_message"`
}

// NotificationCounts backs the polled badge counter.
type NotificationCounts struct {
	UnreadMessages     int64 `json:"unread_messages"`
	PendingConnections int64 `json:"pending_connections"`
	Total              int64 `json:"total"`
}
