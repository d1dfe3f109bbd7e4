package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/archnet-io/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetConversation(ctx context.Context, userA, userB uint) ([]models.Message, error)
	MarkRead(ctx context.Context, recipientID, senderID uint) (int64, error)
	LatestPerCounterpart(ctx context.Context, userID uint) ([]models.Message, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// EnsureIndexes creates the indexes backing the unread counter and the
// conversation queries. The badge counter is polled every few seconds, so the
// (recipient_id, read) index is load-bearing.
func (r *MongoMessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "read", Value: 1}}},
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "recipient_id", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	return err
}

// CreateMessage persists a new unread message with a server-side timestamp
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	if strings.TrimSpace(msg.Content) == "" {
		return ErrEmptyContent
	}
	msg.ID = primitive.NewObjectID()
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// GetConversation retrieves all messages between two users in either
// direction, oldest first (chat-reading order)
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userA, userB uint) ([]models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "recipient_id": userB},
		bson.M{"sender_id": userB, "recipient_id": userA},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flips the read flag on every unread message from sender to
// recipient and returns the number of messages mutated. Idempotent.
func (r *MongoMessageRepository) MarkRead(ctx context.Context, recipientID, senderID uint) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"sender_id": senderID, "recipient_id": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// LatestPerCounterpart returns, for each distinct counterpart the user has
// exchanged messages with, the most recent message of the pair, newest pair
// first. This is the conversation list; nothing is persisted for it.
func (r *MongoMessageRepository) LatestPerCounterpart(ctx context.Context, userID uint) ([]models.Message, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender_id": userID},
			bson.M{"recipient_id": userID},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$addFields", Value: bson.M{"counterpart_id": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$sender_id", userID}},
			"$recipient_id",
			"$sender_id",
		}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$counterpart_id", "doc": bson.M{"$first": "$$ROOT"}}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$doc"}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUnread counts unread messages addressed to a user
func (r *MongoMessageRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
}
