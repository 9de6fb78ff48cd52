package broker

import (
	"encoding/json"

	"github.com/unipoker/poker-services/internal/comm"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	GetRoomSockets func(string) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool), fncGetRoomSockets func(string) ([]string, bool)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetRoomSockets: fncGetRoomSockets,
	}
}

// consume messages from the poker service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// publish message to the poker service
func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// handleMessages receives messages from the poker service
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "chat-broadcast":
		b.broadcastToRoom(message)
	case "chat-limit":
		b.sendMessage(message)
	default:
		log.Error("Unknown message")
		return
	}
}

// broadcastToRoom fans a persisted chat message out to every socket in the
// room it was posted to.
func (b *Broker) broadcastToRoom(m *comm.WSMessage) {
	var bc comm.ChatBroadcast
	if err := json.Unmarshal(m.Data, &bc); err != nil {
		log.Errorf("Error malformed chat broadcast %s", err)
		return
	}

	sockets, ok := b.GetRoomSockets(bc.Room)
	if !ok {
		return
	}

	for _, socketId := range sockets {
		if conn, ok := b.GetConnection(socketId); ok {
			if err := conn.WriteJSON(m); err != nil {
				log.Errorf("Error writing to socket %s: %v", socketId, err)
			}
		}
	}
}

// send socket message to one web client
func (b *Broker) sendMessage(m *comm.WSMessage) {
	socketId := m.SocketId
	if conn, ok := b.GetConnection(socketId); ok {
		if err := conn.WriteJSON(m); err != nil {
			log.Errorf("Error writing to socket %s: %v", socketId, err)
		}
	}
}
