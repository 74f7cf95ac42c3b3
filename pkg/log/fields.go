package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Chat
	FieldRoom      = "room"
	FieldSessionID = "session_id"
	FieldSender    = "sender"
	FieldMessageID = "message_id"

	// Q&A board
	FieldQuestionID = "question_id"
	FieldUserID     = "user_id"
	FieldUsername   = "username"

	// Service
	FieldService = "service"
)
