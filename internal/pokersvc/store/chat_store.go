package store

import (
	"context"
	"fmt"
	"time"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ChatCollection = "chat_messages"

// ChatStore keeps the append-only chat room history in mongo. Message _ids
// are monotonic, so they double as pagination cursors.
type ChatStore struct {
	coll      *mongo.Collection
	retention time.Duration
}

// NewChatStore binds the chat collection. retention > 0 sets expires_at on
// new messages for the collection's TTL index; zero keeps messages forever.
func NewChatStore(db *mongo.Database, retention time.Duration) *ChatStore {
	return &ChatStore{
		coll:      db.Collection(ChatCollection),
		retention: retention,
	}
}

func (s *ChatStore) InsertMessage(ctx context.Context, msg *models.ChatMessage) error {
	msg.ID = primitive.NewObjectID()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if s.retention > 0 {
		msg.ExpiresAt = msg.CreatedAt.Add(s.retention)
	}

	_, err := s.coll.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// ListBefore returns up to limit messages older than cursor (all newest
// first when cursor is empty), in descending _id order.
func (s *ChatStore) ListBefore(ctx context.Context, cursor string, limit int) ([]*models.ChatMessage, error) {
	filter := bson.M{}
	if cursor != "" {
		oid, err := primitive.ObjectIDFromHex(cursor)
		if err != nil {
			return nil, apperr.Validationf("invalid cursor")
		}
		filter["_id"] = bson.M{"$lt": oid}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []*models.ChatMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}

	return messages, nil
}
