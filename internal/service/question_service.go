package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jagriti-aswal/Communitychat2/internal/cache"
	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/repository"
	"github.com/jagriti-aswal/Communitychat2/pkg/log"
)

var (
	ErrMissingFields    = errors.New("title, body and username are required")
	ErrQuestionNotFound = errors.New("question not found")

	// ErrUpvoteContention is returned when an upvote keeps losing the
	// optimistic-concurrency race after the bounded retries are spent.
	ErrUpvoteContention = errors.New("upvote failed due to concurrent updates")
)

// maxUpvoteRetries bounds the re-read-and-retry loop on version conflicts.
const maxUpvoteRetries = 3

type questionService struct {
	repo     repository.QuestionRepository
	cache    cache.BoardCache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewQuestionService(
	repo repository.QuestionRepository,
	boardCache cache.BoardCache,
	cacheTTL time.Duration,
) QuestionService {
	return &questionService{
		repo:     repo,
		cache:    boardCache,
		cacheTTL: cacheTTL,
	}
}

// ListQuestions returns all questions newest first, via the cache.
func (s *questionService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}

	key := s.cache.QuestionsKey()

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		cached, err := s.cache.GetQuestions(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Msg("question cache get error")
		}

		questions, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list questions from repository: %w", err)
		}

		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.cache.SetQuestions(cacheCtx, key, questions, s.cacheTTL); err != nil {
				l := log.L()
				l.Warn().Err(err).Msg("question cache set error")
			}
		}()

		return questions, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.Question), nil
}

// CreateQuestion validates and persists a new question with empty upvotes
// and comments. Validation failures reject before anything is stored.
func (s *questionService) CreateQuestion(ctx context.Context, title, body, username string) (*domain.Question, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" || strings.TrimSpace(username) == "" {
		return nil, ErrMissingFields
	}

	question := &domain.Question{
		Title:    title,
		Body:     body,
		Username: username,
		Upvotes:  []string{},
		Comments: []domain.Comment{},
	}

	if err := s.repo.Create(ctx, question); err != nil {
		return nil, err
	}

	s.invalidateQuestions(ctx)
	return question, nil
}

// Upvote applies one vote for userID on a question, at most once per user.
// "already voted" and "not found" are normal outcomes, not errors. The
// check-then-append runs under optimistic concurrency: on a version conflict
// the question is re-read and the dedup check re-runs, so two concurrent
// votes by the same user can never both land.
func (s *questionService) Upvote(ctx context.Context, questionID, userID string) (*domain.UpvoteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingFields
	}

	l := log.Ctx(ctx)

	for attempt := 0; attempt < maxUpvoteRetries; attempt++ {
		question, version, err := s.repo.GetByID(ctx, questionID)
		if err != nil {
			if errors.Is(err, repository.ErrQuestionNotFound) {
				return &domain.UpvoteResult{Success: false, Reason: domain.UpvoteReasonNotFound}, nil
			}
			return nil, err
		}

		if question.HasUpvoted(userID) {
			l.Debug().
				Str(log.FieldQuestionID, questionID).
				Str(log.FieldUserID, userID).
				Msg("duplicate upvote ignored")
			return &domain.UpvoteResult{Success: false, Reason: domain.UpvoteReasonAlreadyVoted}, nil
		}

		upvotes := append(append([]string{}, question.Upvotes...), userID)

		err = s.repo.UpdateUpvotes(ctx, questionID, upvotes, version)
		if err == nil {
			s.invalidateQuestions(ctx)
			return &domain.UpvoteResult{Success: true}, nil
		}
		if errors.Is(err, repository.ErrVersionConflict) {
			l.Debug().
				Str(log.FieldQuestionID, questionID).
				Int("attempt", attempt+1).
				Msg("upvote version conflict, retrying")
			continue
		}
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return &domain.UpvoteResult{Success: false, Reason: domain.UpvoteReasonNotFound}, nil
		}
		return nil, err
	}

	return nil, ErrUpvoteContention
}

// AddComment appends a comment to an existing question.
func (s *questionService) AddComment(ctx context.Context, questionID, body, username string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" || strings.TrimSpace(username) == "" {
		return nil, ErrMissingFields
	}

	comment := &domain.Comment{
		QuestionID: questionID,
		Body:       body,
		Username:   username,
	}

	if err := s.repo.AddComment(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	s.invalidateQuestions(ctx)
	return comment, nil
}

func (s *questionService) invalidateQuestions(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.cache.QuestionsKey()); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("failed to invalidate question cache")
	}
}
