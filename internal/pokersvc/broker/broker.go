package broker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/comm"
	"github.com/unipoker/poker-services/internal/pokersvc/models"
	"github.com/unipoker/poker-services/internal/pokersvc/service"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker bridges the socket relay and the chat service: it consumes posted
// messages from NATS, rate-limits and persists them, then fans the result
// back out to the relay.
type Broker struct {
	Conn        *nats.Conn
	ChatService *service.ChatService
}

func NewBroker(nc *nats.Conn, chatService *service.ChatService) *Broker {
	return &Broker{
		Conn:        nc,
		ChatService: chatService,
	}
}

func (b *Broker) SubscribeChatInbound() (*nats.Subscription, error) {
	return b.Conn.Subscribe(comm.TopicChatInbound, b.handleMessage)
}

// Publish sends payload to the socket relay.
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// handleMessage processes chat traffic coming from the socket service.
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	msg := &comm.WSMessage{}
	err := json.Unmarshal(msgNat.Data, msg)
	if err != nil {
		log.Errorf("Error nats message %s", err)
		return
	}

	switch msg.Type {
	case "chat":
		b.handleChatPost(msg)
	default:
		log.Warnf("unknown message type from socket service: %s", msg.Type)
	}
}

func (b *Broker) handleChatPost(msg *comm.WSMessage) {
	post := comm.ChatPost{}
	if err := json.Unmarshal(msg.Data, &post); err != nil {
		log.Errorf("Error malformed chat post %s", err)
		return
	}
	if post.Room == "" {
		post.Room = comm.DefaultRoom
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stored, res, err := b.ChatService.Post(ctx, post.UserID, post.Name, post.Content)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.RateLimit {
			b.publishLimitNotice(msg.SocketId, res.Remaining, res.ResetAt, res.RetryAfterSeconds(time.Now()))
			return
		}
		log.Errorf("Error [ChatService.Post] %s", err)
		return
	}

	b.publishBroadcast(post.Room, stored)
}

func (b *Broker) publishBroadcast(room string, message *models.ChatMessage) {
	data, err := json.Marshal(comm.ChatBroadcast{Room: room, Message: message})
	if err != nil {
		log.Errorf("Failed to marshal chat broadcast: %v", err)
		return
	}

	out := comm.WSMessage{Type: "chat-broadcast", Data: data}
	raw, err := json.Marshal(out)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage: %v", err)
		return
	}

	if err := b.Publish(comm.TopicChatOutbound, raw); err != nil {
		return
	}
}

func (b *Broker) publishLimitNotice(socketId string, remaining int, resetAt time.Time, retryAfter int) {
	data, err := json.Marshal(comm.ChatLimitNotice{
		Remaining:  remaining,
		ResetAt:    resetAt.Unix(),
		RetryAfter: retryAfter,
	})
	if err != nil {
		log.Errorf("Failed to marshal limit notice: %v", err)
		return
	}

	out := comm.WSMessage{Type: "chat-limit", Data: data, SocketId: socketId}
	raw, err := json.Marshal(out)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage: %v", err)
		return
	}

	if err := b.Publish(comm.TopicChatOutbound, raw); err != nil {
		return
	}
}
