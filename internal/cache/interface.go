package cache

import (
	"context"
	"time"

	"github.com/jagriti-aswal/Communitychat2/internal/domain"
)

// BoardCache caches read-heavy listings: the full question board and
// per-room message history. Entries are short-lived and invalidated on
// every write, so a miss is the common case after mutation.
type BoardCache interface {
	GetQuestions(ctx context.Context, key string) ([]domain.Question, error)
	SetQuestions(ctx context.Context, key string, questions []domain.Question, ttl time.Duration) error
	GetMessages(ctx context.Context, key string) ([]domain.ChatMessage, error)
	SetMessages(ctx context.Context, key string, messages []domain.ChatMessage, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	QuestionsKey() string
	MessagesKey(room string) string
	Close() error
}
