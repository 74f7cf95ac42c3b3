package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/pkg/database"
	"github.com/jagriti-aswal/Communitychat2/pkg/log"
)

// GormQuestionRepository implements QuestionRepository using GORM.
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewGormQuestionRepository creates a new GORM-based question repository.
func NewGormQuestionRepository(db *gorm.DB) *GormQuestionRepository {
	return &GormQuestionRepository{db: db}
}

// Create persists a new question with an empty upvote set.
func (r *GormQuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	l := log.Ctx(ctx)

	question.ID = uuid.New().String()
	if question.Upvotes == nil {
		question.Upvotes = []string{}
	}
	if question.Comments == nil {
		question.Comments = []domain.Comment{}
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now().UTC()
	}

	model := domain.QuestionToModel(question)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to create question in db")
		return result.Error
	}

	question.CreatedAt = model.CreatedAt
	l.Debug().Str(log.FieldQuestionID, question.ID).Msg("question created in db")
	return nil
}

// List returns all questions ordered newest first.
func (r *GormQuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	l := log.Ctx(ctx)

	var models []domain.QuestionModel
	result := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Msg("failed to list questions from db")
		return nil, result.Error
	}

	questions := make([]domain.Question, len(models))
	for i, model := range models {
		questions[i] = *model.ToDomain()
	}

	return questions, nil
}

// GetByID retrieves a question and its stored version.
func (r *GormQuestionRepository) GetByID(ctx context.Context, id string) (*domain.Question, int, error) {
	l := log.Ctx(ctx)

	var model domain.QuestionModel
	result := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, 0, ErrQuestionNotFound
		}
		l.Error().Err(result.Error).Str(log.FieldQuestionID, id).Msg("failed to get question by id")
		return nil, 0, result.Error
	}

	return model.ToDomain(), model.Version, nil
}

// UpdateUpvotes replaces the upvote set if the stored version still matches.
// A version mismatch reports ErrVersionConflict so the caller can re-read
// and retry; this is what keeps the one-vote-per-user invariant under
// concurrent upvotes.
func (r *GormQuestionRepository) UpdateUpvotes(ctx context.Context, id string, upvotes []string, version int) error {
	l := log.Ctx(ctx)

	result := r.db.WithContext(ctx).Model(&domain.QuestionModel{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"upvotes": database.StringArray(upvotes),
			"version": version + 1,
		})
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldQuestionID, id).Msg("failed to update question upvotes")
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.QuestionModel{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrQuestionNotFound
		}
		return ErrVersionConflict
	}

	l.Debug().Str(log.FieldQuestionID, id).Int("votes", len(upvotes)).Msg("question upvotes updated")
	return nil
}

// AddComment appends a comment to an existing question.
func (r *GormQuestionRepository) AddComment(ctx context.Context, comment *domain.Comment) error {
	l := log.Ctx(ctx)

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.QuestionModel{}).
		Where("id = ?", comment.QuestionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrQuestionNotFound
	}

	comment.ID = uuid.New().String()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	model := domain.CommentToModel(comment)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Str(log.FieldQuestionID, comment.QuestionID).Msg("failed to create comment in db")
		return result.Error
	}

	comment.CreatedAt = model.CreatedAt
	return nil
}
