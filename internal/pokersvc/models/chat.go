package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage lives in the mongo chat_messages collection, append-only.
// The _id doubles as the pagination cursor.
type ChatMessage struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      int64              `json:"user_id" bson:"user_id"`
	DisplayName string             `json:"display_name" bson:"display_name"`
	Content     string             `json:"content" bson:"content"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	ExpiresAt   time.Time          `json:"-" bson:"expires_at,omitempty"`
}
