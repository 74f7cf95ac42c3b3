package service

import (
	"context"

	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/hub"
)

// ChatService handles the inbound WebSocket events for one client and the
// message-history reads.
type ChatService interface {
	HandleJoinRoom(ctx context.Context, client *hub.Client, room string) error
	HandleLeaveRoom(ctx context.Context, client *hub.Client, room string) error
	HandleChatMessage(ctx context.Context, client *hub.Client, room, sender, body string) error
	HandleDisconnect(ctx context.Context, client *hub.Client) error
	ListMessages(ctx context.Context, room string) ([]domain.ChatMessage, error)
}

// QuestionService coordinates the Q&A board: listing, creation, comments and
// dedup-safe upvoting.
type QuestionService interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	CreateQuestion(ctx context.Context, title, body, username string) (*domain.Question, error)
	Upvote(ctx context.Context, questionID, userID string) (*domain.UpvoteResult, error)
	AddComment(ctx context.Context, questionID, body, username string) (*domain.Comment, error)
}
