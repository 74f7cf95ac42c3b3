package domain

import (
	"sync"
	"time"
)

// Session tracks one connected client for the lifetime of its connection.
// A new connection is always a new session; there is no resumption.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActiveAt time.Time

	mu          sync.RWMutex
	joinedRooms map[string]struct{}
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActiveAt: now,
		joinedRooms:  make(map[string]struct{}),
	}
}

// JoinRoom records membership. Joining a room twice is a no-op.
func (s *Session) JoinRoom(room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joinedRooms[room] = struct{}{}
	s.LastActiveAt = time.Now()
}

// LeaveRoom removes membership. Leaving a room the session never joined is a no-op.
func (s *Session) LeaveRoom(room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.joinedRooms, room)
	s.LastActiveAt = time.Now()
}

// InRoom reports whether the session has joined the room.
func (s *Session) InRoom(room string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.joinedRooms[room]
	return ok
}

// Rooms returns a snapshot of the rooms this session has joined.
func (s *Session) Rooms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]string, 0, len(s.joinedRooms))
	for room := range s.joinedRooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// UpdateActivity bumps the last-active timestamp.
func (s *Session) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()
}
