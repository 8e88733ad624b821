package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage represents a direct message stored in MongoDB
type ChatMessage struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID    uint               `json:"sender_id" bson:"sender_id"`
	RecipientID uint               `json:"recipient_id" bson:"recipient_id"`
	Content     string             `json:"content" bson:"content"`
	PostID      uint               `json:"post_id,omitempty" bson:"post_id,omitempty"` // set when the message shares a post
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required,min=1,max=2000"`
}

// SharePostRequest defines the request body for sharing a post over a direct message
type SharePostRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	PostID      uint   `json:"post_id" validate:"required"`
	Message     string `json:"message,omitempty" validate:"omitempty,max=500"`
}
