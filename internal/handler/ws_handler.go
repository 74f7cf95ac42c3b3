package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jagriti-aswal/Communitychat2/internal/config"
	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/hub"
	"github.com/jagriti-aswal/Communitychat2/internal/service"
	"github.com/jagriti-aswal/Communitychat2/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades connections and dispatches inbound events to the chat
// service.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.ChatService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l := log.L()
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)

	h.hub.Register(client)

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleEvent)
		// Read pump exit is the disconnect signal.
		h.service.HandleDisconnect(context.Background(), client)
	}()
}

func (h *WSHandler) handleEvent(client *hub.Client, message []byte) {
	var base domain.BaseEvent
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Invalid event format"))
		return
	}

	ctx := context.Background()
	l := log.L()

	switch base.Type {
	case domain.EventTypeJoin:
		var event domain.JoinEvent
		if err := json.Unmarshal(message, &event); err != nil {
			client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Invalid join event"))
			return
		}
		if err := h.service.HandleJoinRoom(ctx, client, event.Room); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("join room failed")
		}

	case domain.EventTypeLeave:
		var event domain.LeaveEvent
		if err := json.Unmarshal(message, &event); err != nil {
			client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Invalid leave event"))
			return
		}
		if err := h.service.HandleLeaveRoom(ctx, client, event.Room); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("leave room failed")
		}

	case domain.EventTypeSendMessage:
		var event domain.SendMessageEvent
		if err := json.Unmarshal(message, &event); err != nil {
			client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Invalid send_message event"))
			return
		}
		if err := h.service.HandleChatMessage(ctx, client, event.Room, event.Sender, event.Body); err != nil {
			l.Warn().Err(err).Str("client_id", client.ID).Msg("chat message failed")
		}

	case domain.EventTypePing:
		client.SendEvent(map[string]string{"type": domain.EventTypePong})

	default:
		client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "Unknown event type"))
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", func(c *gin.Context) {
		h.HandleWebSocket(c.Writer, c.Request)
	})
}
