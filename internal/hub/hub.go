package hub

import (
	"encoding/json"
	"sync"

	"github.com/jagriti-aswal/Communitychat2/internal/config"
	"github.com/jagriti-aswal/Communitychat2/pkg/log"
)

// Hub owns the room membership map: room name -> clientID -> client. Rooms
// are implicit; they appear on first join and are dropped when the last
// member leaves. All access goes through JoinRoom, LeaveRoom, RoomClients
// and the register/unregister/broadcast channels.
type Hub struct {
	clients    map[string]*Client            // clientID -> client
	rooms      map[string]map[string]*Client // room -> clientID -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *RoomMessage
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

// RoomMessage is one payload queued for delivery to every member of a room.
type RoomMessage struct {
	Room    string
	Message []byte
}

func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *RoomMessage, 256),
		config:     cfg,
	}
}

// Run processes registration, teardown and broadcast events. Broadcasts are
// consumed by a single loop, so per-room delivery order matches enqueue order.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str("client_id", client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				for room, members := range h.rooms {
					delete(members, client.ID)
					if len(members) == 0 {
						delete(h.rooms, room)
					}
				}
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str("client_id", client.ID).Msg("client unregistered")

		case msg := <-h.broadcast:
			h.mu.RLock()
			members := h.rooms[msg.Room]
			for _, client := range members {
				select {
				case client.Send <- msg.Message:
				default:
					// Slow or dead member. Skip it; delivery failures
					// never affect the rest of the room.
					go h.removeClient(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom adds the client to a room. Joining twice is a no-op.
func (h *Hub) JoinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[string]*Client)
	}
	h.rooms[room][client.ID] = client
	l := log.L()
	l.Info().Str("client_id", client.ID).Str(log.FieldRoom, room).Msg("client joined room")
}

// LeaveRoom removes the client from a room. Leaving a room the client never
// joined is a no-op.
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	l := log.L()
	l.Info().Str("client_id", client.ID).Str(log.FieldRoom, room).Msg("client left room")
}

// RoomClients returns a snapshot of the room's current members. The snapshot
// may be stale immediately after return; delivery is best-effort.
func (h *Hub) RoomClients(room string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.rooms[room]
	clients := make([]*Client, 0, len(members))
	for _, client := range members {
		clients = append(clients, client)
	}
	return clients
}

// RoomClientCount returns the number of members in a room.
func (h *Hub) RoomClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// BroadcastToRoom queues a payload for every current member of the room.
func (h *Hub) BroadcastToRoom(room string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.broadcast <- &RoomMessage{
		Room:    room,
		Message: data,
	}
	return nil
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}
