package service

import (
	"context"
	"strings"
	"time"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/models"
	"github.com/unipoker/poker-services/internal/pokersvc/ratelimit"
)

// MaxChatPageSize clamps history page sizes.
const MaxChatPageSize = 100

const maxMessageLength = 500

type MessageStore interface {
	InsertMessage(ctx context.Context, msg *models.ChatMessage) error
	ListBefore(ctx context.Context, cursor string, limit int) ([]*models.ChatMessage, error)
}

type ChatPage struct {
	Messages   []*models.ChatMessage `json:"messages"`
	HasMore    bool                  `json:"has_more"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

type ChatService struct {
	store   MessageStore
	limiter *ratelimit.Limiter
}

func NewChatService(store MessageStore, limiter *ratelimit.Limiter) *ChatService {
	return &ChatService{store: store, limiter: limiter}
}

// History pages backwards through the room from cursor (or from the newest
// message when cursor is empty) and returns the page oldest-first.
func (s *ChatService) History(ctx context.Context, cursor string, limit int) (*ChatPage, error) {
	if limit <= 0 || limit > MaxChatPageSize {
		limit = MaxChatPageSize
	}

	// fetch one extra row to learn whether an older page exists
	messages, err := s.store.ListBefore(ctx, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	nextCursor := ""
	if hasMore {
		nextCursor = messages[len(messages)-1].ID.Hex()
	}

	// store order is newest-first; callers get chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}

	return &ChatPage{
		Messages:   messages,
		HasMore:    hasMore,
		NextCursor: nextCursor,
	}, nil
}

// Post rate-limits the user, then appends the message. The limiter result
// is returned on success and failure alike so callers can echo the
// remaining-count and reset-time metadata.
func (s *ChatService) Post(ctx context.Context, userID int64, displayName, content string) (*models.ChatMessage, ratelimit.Result, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ratelimit.Result{}, apperr.Validationf("message content is empty")
	}
	if len(content) > maxMessageLength {
		return nil, ratelimit.Result{}, apperr.Validationf("message exceeds %d characters", maxMessageLength)
	}

	res, err := s.limiter.Check(ctx, userID)
	if err != nil {
		return nil, ratelimit.Result{}, err
	}
	if !res.Success {
		return nil, res, apperr.New(apperr.RateLimit, "too many messages, slow down")
	}

	msg := &models.ChatMessage{
		UserID:      userID,
		DisplayName: displayName,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.InsertMessage(ctx, msg); err != nil {
		return nil, res, err
	}

	return msg, res, nil
}
