package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct-message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	GetMessageByID(ctx context.Context, id string) (*models.ChatMessage, error)
	GetConversation(ctx context.Context, userA, userB uint) ([]models.ChatMessage, error)
	GetRecentByUser(ctx context.Context, userID uint, limit int64) ([]models.ChatMessage, error)
	CountBySender(ctx context.Context, userID uint) (int64, error)
	CountByRecipient(ctx context.Context, userID uint) (int64, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// CreateMessage creates a new chat message in MongoDB
func (r *MongoMessageRepository) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// GetMessageByID retrieves a chat message by ID from MongoDB
func (r *MongoMessageRepository) GetMessageByID(ctx context.Context, id string) (*models.ChatMessage, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID format: %w", err)
	}

	var msg models.ChatMessage
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("message not found")
		}
		return nil, err
	}
	return &msg, nil
}

// GetConversation retrieves both directions of a two-user conversation,
// oldest first
func (r *MongoMessageRepository) GetConversation(ctx context.Context, userA, userB uint) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
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

	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// GetRecentByUser retrieves the newest messages a user sent or received
func (r *MongoMessageRepository) GetRecentByUser(ctx context.Context, userID uint, limit int64) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID},
		bson.M{"recipient_id": userID},
	}}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// CountBySender counts the messages a user has sent
func (r *MongoMessageRepository) CountBySender(ctx context.Context, userID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"sender_id": userID})
}

// CountByRecipient counts the messages a user has received
func (r *MongoMessageRepository) CountByRecipient(ctx context.Context, userID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient_id": userID})
}
