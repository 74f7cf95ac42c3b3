package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jagriti-aswal/Communitychat2/internal/cache"
	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/hub"
	"github.com/jagriti-aswal/Communitychat2/internal/relay"
	"github.com/jagriti-aswal/Communitychat2/internal/repository"
	"github.com/jagriti-aswal/Communitychat2/pkg/log"
)

type chatService struct {
	hub      *hub.Hub
	relay    *relay.Relay
	repo     repository.MessageRepository
	cache    cache.BoardCache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewChatService(
	h *hub.Hub,
	r *relay.Relay,
	repo repository.MessageRepository,
	boardCache cache.BoardCache,
	cacheTTL time.Duration,
) ChatService {
	return &chatService{
		hub:      h,
		relay:    r,
		repo:     repo,
		cache:    boardCache,
		cacheTTL: cacheTTL,
	}
}

func (s *chatService) HandleJoinRoom(ctx context.Context, c *hub.Client, room string) error {
	if room == "" {
		return c.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Room is required"))
	}

	s.hub.JoinRoom(c, room)
	c.Session.JoinRoom(room)

	return c.SendEvent(&domain.RoomJoinedEvent{
		Type: domain.EventTypeRoomJoined,
		Room: room,
	})
}

func (s *chatService) HandleLeaveRoom(ctx context.Context, c *hub.Client, room string) error {
	if room == "" {
		return c.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Room is required"))
	}

	s.hub.LeaveRoom(c, room)
	c.Session.LeaveRoom(room)

	return c.SendEvent(&domain.RoomLeftEvent{
		Type: domain.EventTypeRoomLeft,
		Room: room,
	})
}

// HandleChatMessage relays one message. A relay failure is reported to the
// sending client only; other room members are unaffected.
func (s *chatService) HandleChatMessage(ctx context.Context, c *hub.Client, room, sender, body string) error {
	msg := &domain.ChatMessage{
		Room:   room,
		Sender: sender,
		Body:   body,
	}

	if err := s.relay.Relay(ctx, msg); err != nil {
		if errors.Is(err, relay.ErrInvalidMessage) {
			c.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Room, sender and body are required"))
			return err
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldRoom, room).Str("client_id", c.ID).Msg("failed to relay chat message")
		c.SendEvent(domain.NewErrorEvent(domain.ErrCodeInternalError, "Failed to send message"))
		return err
	}

	return nil
}

// HandleDisconnect removes the session from every room it joined. The hub's
// unregister path drops the client from the membership map as well; this
// keeps the session's own view consistent and logs the teardown.
func (s *chatService) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	for _, room := range c.Session.Rooms() {
		s.hub.LeaveRoom(c, room)
		c.Session.LeaveRoom(room)
	}
	return nil
}

// ListMessages returns a room's history oldest first, via the cache.
func (s *chatService) ListMessages(ctx context.Context, room string) ([]domain.ChatMessage, error) {
	if s.cache == nil {
		return s.repo.ListByRoom(ctx, room)
	}

	key := s.cache.MessagesKey(room)

	// Singleflight collapses concurrent history reads for the same room.
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		cached, err := s.cache.GetMessages(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldRoom, room).Msg("message cache get error")
		}

		messages, err := s.repo.ListByRoom(ctx, room)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages from repository: %w", err)
		}

		// Store in cache without blocking the response.
		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.cache.SetMessages(cacheCtx, key, messages, s.cacheTTL); err != nil {
				l := log.L()
				l.Warn().Err(err).Str(log.FieldRoom, room).Msg("message cache set error")
			}
		}()

		return messages, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.ChatMessage), nil
}
