package ws

import (
	"encoding/json"
	"sync"

	"github.com/unipoker/poker-services/internal/comm"
	"github.com/unipoker/poker-services/internal/socketsvc/broker"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
	roomMap sync.Map // to keep track of roomId with socketId
	userMap sync.Map // socketId -> chat identity from the init message
	Broker  *broker.Broker
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "init":
		s.handleInit(socketId, message)
	case "chat":
		s.handleChat(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) handleInit(socketId string, msg *comm.WSMessage) {
	var payload comm.ChatInit
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_init_data Malformed init payload %s", err)
		return
	}

	if payload.UserID == 0 || payload.Name == "" {
		log.Error("Invalid init payload: missing required user fields")
		return
	}
	if payload.Room == "" {
		payload.Room = comm.DefaultRoom
	}

	s.userMap.Store(socketId, payload)
	s.StoreRoom(socketId, payload.Room)

	log.Infof("socket %s joined room %s as user %d", socketId, payload.Room, payload.UserID)
}

// handleChat forwards a post to the poker service, stamped with the identity
// the socket registered at init. Sockets that never sent init are ignored.
func (s *Ws) handleChat(socketId string, msg *comm.WSMessage) {
	identity, ok := s.userMap.Load(socketId)
	if !ok {
		log.Warnf("chat from uninitialized socket %s dropped", socketId)
		return
	}
	init := identity.(comm.ChatInit)

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: malformed chat payload %s", err)
		return
	}

	post := comm.ChatPost{
		UserID:  init.UserID,
		Name:    init.Name,
		Room:    init.Room,
		Content: payload.Content,
	}

	data, err := json.Marshal(post)
	if err != nil {
		log.Errorf("Failed to marshal chat post: %v", err)
		return
	}

	out := comm.WSMessage{Type: "chat", Data: data, SocketId: socketId}
	raw, err := json.Marshal(out)
	if err != nil {
		log.Errorf("Failed to marshal WSMessage for NATS: %v", err)
		return
	}

	if err := s.Broker.Publish(comm.TopicChatInbound, raw); err != nil {
		log.Errorf("Failed to publish to NATS topic %s: %v", comm.TopicChatInbound, err)
		return
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) StoreRoom(socketId string, roomId string) {
	s.roomMap.Store(socketId, roomId)
}

func (s *Ws) GetRoom(socketId string) (string, bool) {
	room, ok := s.roomMap.Load(socketId)
	if !ok {
		return "", false
	}
	return room.(string), true
}

func (s *Ws) GetRoomSockets(roomId string) ([]string, bool) {
	var sockets []string
	found := false

	s.roomMap.Range(func(key, value interface{}) bool {
		if value.(string) == roomId {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.roomMap.Delete(socketId)
	s.userMap.Delete(socketId)
}
