package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jagriti-aswal/Communitychat2/internal/config"
	"github.com/jagriti-aswal/Communitychat2/internal/domain"
)

func testWSConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
	}
}

func newTestClient(id string, h *Hub) *Client {
	return NewClient(id, h, nil, testWSConfig())
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestJoinRoomIdempotent(t *testing.T) {
	h := NewHub(testWSConfig())
	c := newTestClient("c1", h)

	h.JoinRoom(c, "clinic-1")
	h.JoinRoom(c, "clinic-1")

	if got := h.RoomClientCount("clinic-1"); got != 1 {
		t.Errorf("RoomClientCount = %d, want 1", got)
	}
}

func TestLeaveRoom(t *testing.T) {
	h := NewHub(testWSConfig())
	c := newTestClient("c1", h)

	h.JoinRoom(c, "clinic-1")
	h.LeaveRoom(c, "clinic-1")

	if got := h.RoomClientCount("clinic-1"); got != 0 {
		t.Errorf("RoomClientCount = %d, want 0", got)
	}

	// Leaving a room never joined must not panic or error.
	h.LeaveRoom(c, "no-such-room")
}

func TestRoomClientsUnknownRoom(t *testing.T) {
	h := NewHub(testWSConfig())

	clients := h.RoomClients("nowhere")
	if len(clients) != 0 {
		t.Errorf("RoomClients = %d members, want 0", len(clients))
	}
}

func TestUnregisterLeavesAllRooms(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()

	c := newTestClient("c1", h)
	h.Register(c)
	h.JoinRoom(c, "room-a")
	h.JoinRoom(c, "room-b")

	h.Unregister(c)

	waitFor(t, time.Second, func() bool {
		return h.RoomClientCount("room-a") == 0 && h.RoomClientCount("room-b") == 0
	})

	// Send channel is closed on unregister.
	waitFor(t, time.Second, func() bool {
		select {
		case _, ok := <-c.Send:
			return !ok
		default:
			return false
		}
	})
}

func TestBroadcastDeliversToAllMembers(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()

	a := newTestClient("a", h)
	b := newTestClient("b", h)
	h.Register(a)
	h.Register(b)
	h.JoinRoom(a, "clinic-1")
	h.JoinRoom(b, "clinic-1")

	event := &domain.ReceiveMessageEvent{
		Type:   domain.EventTypeReceiveMessage,
		Room:   "clinic-1",
		Sender: "alice",
		Body:   "hi",
	}
	if err := h.BroadcastToRoom("clinic-1", event); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.Send:
			var got domain.ReceiveMessageEvent
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal delivered payload: %v", err)
			}
			if got.Body != "hi" || got.Sender != "alice" {
				t.Errorf("client %s received %+v", c.ID, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive broadcast", c.ID)
		}
	}
}

func TestBroadcastNotDeliveredToNonMembers(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()

	member := newTestClient("member", h)
	outsider := newTestClient("outsider", h)
	h.Register(member)
	h.Register(outsider)
	h.JoinRoom(member, "clinic-1")
	h.JoinRoom(outsider, "clinic-2")

	if err := h.BroadcastToRoom("clinic-1", map[string]string{"type": "x"}); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}

	select {
	case <-member.Send:
	case <-time.After(time.Second):
		t.Fatal("member did not receive broadcast")
	}

	select {
	case data := <-outsider.Send:
		t.Errorf("outsider received broadcast: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastOrderPerRoom(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()

	c := newTestClient("c1", h)
	h.Register(c)
	h.JoinRoom(c, "clinic-1")

	const n = 50
	for i := 0; i < n; i++ {
		if err := h.BroadcastToRoom("clinic-1", map[string]int{"seq": i}); err != nil {
			t.Fatalf("BroadcastToRoom: %v", err)
		}
	}

	for i := 0; i < n; i++ {
		select {
		case data := <-c.Send:
			var got map[string]int
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got["seq"] != i {
				t.Fatalf("received seq %d at position %d", got["seq"], i)
			}
		case <-time.After(time.Second):
			t.Fatalf("missing broadcast %d", i)
		}
	}
}

func TestBroadcastSkipsSlowMember(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()

	slow := newTestClient("slow", h)
	fast := newTestClient("fast", h)
	h.Register(slow)
	h.Register(fast)
	h.JoinRoom(slow, "clinic-1")
	h.JoinRoom(fast, "clinic-1")

	// Fill the slow member's buffer so its delivery fails.
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("{}")
	}

	if err := h.BroadcastToRoom("clinic-1", map[string]string{"type": "x"}); err != nil {
		t.Fatalf("BroadcastToRoom: %v", err)
	}

	// The healthy member still gets the payload.
	select {
	case <-fast.Send:
	case <-time.After(time.Second):
		t.Fatal("healthy member did not receive broadcast")
	}

	// The slow member is eventually dropped from the room.
	waitFor(t, time.Second, func() bool {
		return h.RoomClientCount("clinic-1") == 1
	})
}
