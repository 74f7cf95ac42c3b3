package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jagriti-aswal/Communitychat2/internal/cache"
	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/repository"
	"github.com/jagriti-aswal/Communitychat2/pkg/log"
)

var ErrInvalidMessage = errors.New("message room, sender and body are required")

// Broadcaster queues a payload for every current member of a room.
// Implemented by hub.Hub.
type Broadcaster interface {
	BroadcastToRoom(room string, message interface{}) error
}

// Relay persists a chat message and then fans it out to the room's current
// members. Persistence happens-before broadcast: a storage failure aborts
// the relay and nothing is delivered, so a message is never seen by the room
// without being in the log.
type Relay struct {
	repo        repository.MessageRepository
	broadcaster Broadcaster
	cache       cache.BoardCache

	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func New(repo repository.MessageRepository, broadcaster Broadcaster, boardCache cache.BoardCache) *Relay {
	return &Relay{
		repo:        repo,
		broadcaster: broadcaster,
		cache:       boardCache,
		roomLocks:   make(map[string]*sync.Mutex),
	}
}

// Relay persists then broadcasts one message. The room's lock is held across
// both steps so all members observe messages in persistence order; messages
// for different rooms do not serialize against each other.
func (r *Relay) Relay(ctx context.Context, msg *domain.ChatMessage) error {
	if msg.Room == "" || msg.Sender == "" || msg.Body == "" {
		return ErrInvalidMessage
	}

	lock := r.roomLock(msg.Room)
	lock.Lock()
	defer lock.Unlock()

	if err := r.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("persist message: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Invalidate(ctx, r.cache.MessagesKey(msg.Room)); err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldRoom, msg.Room).Msg("failed to invalidate message cache")
		}
	}

	event := &domain.ReceiveMessageEvent{
		Type:      domain.EventTypeReceiveMessage,
		ID:        msg.ID,
		Room:      msg.Room,
		Sender:    msg.Sender,
		Body:      msg.Body,
		Timestamp: msg.CreatedAt.UnixMilli(),
	}

	// Delivery is best-effort. A broadcast failure after successful
	// persistence is contained here, never surfaced to the sender.
	if err := r.broadcaster.BroadcastToRoom(msg.Room, event); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldRoom, msg.Room).Msg("broadcast failed after persist")
	}

	return nil
}

func (r *Relay) roomLock(room string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.roomLocks[room]
	if !ok {
		lock = &sync.Mutex{}
		r.roomLocks[room] = lock
	}
	return lock
}
