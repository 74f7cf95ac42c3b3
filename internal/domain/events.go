package domain

// WebSocket event types from client.
const (
	EventTypeJoin        = "join"
	EventTypeLeave       = "leave"
	EventTypeSendMessage = "send_message"
	EventTypePing        = "ping"
)

// WebSocket event types to client.
const (
	EventTypeRoomJoined     = "room_joined"
	EventTypeRoomLeft       = "room_left"
	EventTypeReceiveMessage = "receive_message"
	EventTypeError          = "error"
	EventTypePong           = "pong"
)

// Error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotInRoom     = "NOT_IN_ROOM"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// BaseEvent is the base structure for all WebSocket events.
type BaseEvent struct {
	Type string `json:"type"`
}

// Client -> Server events

type JoinEvent struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

type LeaveEvent struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

type SendMessageEvent struct {
	Type   string `json:"type"`
	Room   string `json:"room"`
	Sender string `json:"sender"`
	Body   string `json:"body"`
}

// Server -> Client events

type RoomJoinedEvent struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

type RoomLeftEvent struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

type ReceiveMessageEvent struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Room      string `json:"room"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorEvent(code, message string) *ErrorEvent {
	return &ErrorEvent{
		Type:    EventTypeError,
		Code:    code,
		Message: message,
	}
}
