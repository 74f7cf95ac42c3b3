package domain

import (
	"sort"
	"sync"
	"testing"
)

func TestSessionJoinLeave(t *testing.T) {
	s := NewSession("s1")

	s.JoinRoom("room-a")
	s.JoinRoom("room-a")
	s.JoinRoom("room-b")

	rooms := s.Rooms()
	sort.Strings(rooms)
	if len(rooms) != 2 || rooms[0] != "room-a" || rooms[1] != "room-b" {
		t.Errorf("Rooms() = %v", rooms)
	}

	if !s.InRoom("room-a") {
		t.Error("InRoom(room-a) = false")
	}

	s.LeaveRoom("room-a")
	if s.InRoom("room-a") {
		t.Error("still in room-a after leave")
	}

	// Leaving a room never joined is a no-op.
	s.LeaveRoom("room-x")
	if got := len(s.Rooms()); got != 1 {
		t.Errorf("rooms = %d, want 1", got)
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewSession("s1")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.JoinRoom("room-a")
			s.InRoom("room-a")
			s.Rooms()
			s.LeaveRoom("room-a")
		}()
	}
	wg.Wait()
}

func TestQuestionHasUpvoted(t *testing.T) {
	q := &Question{Upvotes: []string{"u1", "u2"}}

	if !q.HasUpvoted("u1") {
		t.Error("HasUpvoted(u1) = false")
	}
	if q.HasUpvoted("u3") {
		t.Error("HasUpvoted(u3) = true")
	}
}
