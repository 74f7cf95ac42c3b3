package repository

import (
	"context"
	"errors"

	"github.com/jagriti-aswal/Communitychat2/internal/domain"
)

var (
	ErrQuestionNotFound = errors.New("question not found")

	// ErrVersionConflict signals a concurrent modification of a question's
	// upvote set. Callers are expected to re-read and retry.
	ErrVersionConflict = errors.New("question modified concurrently")
)

// MessageRepository defines the interface for chat message persistence.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error
	ListByRoom(ctx context.Context, room string) ([]domain.ChatMessage, error)
}

// QuestionRepository defines the interface for question persistence.
// GetByID returns the stored version alongside the question; UpdateUpvotes
// only applies when the caller's version still matches the stored one.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	List(ctx context.Context) ([]domain.Question, error)
	GetByID(ctx context.Context, id string) (*domain.Question, int, error)
	UpdateUpvotes(ctx context.Context, id string, upvotes []string, version int) error
	AddComment(ctx context.Context, comment *domain.Comment) error
}
