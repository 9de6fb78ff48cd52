package comm

import (
	"encoding/json"

	"github.com/unipoker/poker-services/internal/pokersvc/models"
)

// NATS topics linking the socket relay and the poker service.
const (
	TopicChatInbound  = "chat.inbound"  // socketsvc -> pokersvc
	TopicChatOutbound = "chat.outbound" // pokersvc -> socketsvc
)

// DefaultRoom is the single shared chat room.
const DefaultRoom = "lobby"

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "init", "chat"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// ChatInit registers a socket into the chat room.
type ChatInit struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Room   string `json:"room,omitempty"`
}

// ChatPost is a message a socket wants appended to the room.
type ChatPost struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Room    string `json:"room,omitempty"`
	Content string `json:"content"`
}

// ChatBroadcast fans a persisted message out to the room's sockets.
type ChatBroadcast struct {
	Room    string              `json:"room"`
	Message *models.ChatMessage `json:"message"`
}

// ChatLimitNotice tells one throttled socket when it may post again.
type ChatLimitNotice struct {
	Remaining  int   `json:"remaining"`
	ResetAt    int64 `json:"reset_at"`
	RetryAfter int   `json:"retry_after"`
}
