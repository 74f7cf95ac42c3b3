package domain

import (
	"time"

	"github.com/jagriti-aswal/Communitychat2/pkg/database"
)

// Question is one entry on the community Q&A board. Upvotes holds the set of
// user identifiers that voted; a user appears at most once.
type Question struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Username  string    `json:"username"`
	Upvotes   []string  `json:"upvotes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment belongs to exactly one question.
type Comment struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	Body       string    `json:"body"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasUpvoted reports whether the user already voted on this question.
func (q *Question) HasUpvoted(userID string) bool {
	for _, id := range q.Upvotes {
		if id == userID {
			return true
		}
	}
	return false
}

// QuestionModel is the GORM model for the questions table. Version backs the
// optimistic concurrency check on upvote updates.
type QuestionModel struct {
	ID        string               `gorm:"type:varchar(36);primaryKey"`
	Title     string               `gorm:"type:varchar(200);not null"`
	Body      string               `gorm:"type:text;not null"`
	Username  string               `gorm:"type:varchar(50);not null"`
	Upvotes   database.StringArray `gorm:"type:text"`
	Version   int                  `gorm:"not null;default:0"`
	CreatedAt time.Time            `gorm:"index;autoCreateTime"`
	Comments  []CommentModel       `gorm:"foreignKey:QuestionID"`
}

// TableName specifies the table name for QuestionModel.
func (QuestionModel) TableName() string {
	return "questions"
}

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	QuestionID string    `gorm:"type:varchar(36);index;not null"`
	Body       string    `gorm:"type:text;not null"`
	Username   string    `gorm:"type:varchar(50);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for CommentModel.
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts QuestionModel to domain Question.
func (m *QuestionModel) ToDomain() *Question {
	comments := make([]Comment, len(m.Comments))
	for i, c := range m.Comments {
		comments[i] = *c.ToDomain()
	}
	upvotes := []string(m.Upvotes)
	if upvotes == nil {
		upvotes = []string{}
	}
	return &Question{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		Username:  m.Username,
		Upvotes:   upvotes,
		Comments:  comments,
		CreatedAt: m.CreatedAt,
	}
}

// QuestionToModel converts domain Question to QuestionModel.
func QuestionToModel(q *Question) *QuestionModel {
	return &QuestionModel{
		ID:        q.ID,
		Title:     q.Title,
		Body:      q.Body,
		Username:  q.Username,
		Upvotes:   database.StringArray(q.Upvotes),
		CreatedAt: q.CreatedAt,
	}
}

// ToDomain converts CommentModel to domain Comment.
func (m *CommentModel) ToDomain() *Comment {
	return &Comment{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Body:       m.Body,
		Username:   m.Username,
		CreatedAt:  m.CreatedAt,
	}
}

// CommentToModel converts domain Comment to CommentModel.
func CommentToModel(c *Comment) *CommentModel {
	return &CommentModel{
		ID:         c.ID,
		QuestionID: c.QuestionID,
		Body:       c.Body,
		Username:   c.Username,
		CreatedAt:  c.CreatedAt,
	}
}

// CreateQuestionRequest represents a create question request.
type CreateQuestionRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Body     string `json:"body" binding:"required,min=1"`
	Username string `json:"username" binding:"required,min=1,max=50"`
}

// UpvoteRequest represents an upvote request.
type UpvoteRequest struct {
	UserID string `json:"userId" binding:"required,min=1"`
}

// CreateCommentRequest represents an add-comment request.
type CreateCommentRequest struct {
	Body     string `json:"body" binding:"required,min=1"`
	Username string `json:"username" binding:"required,min=1,max=50"`
}

// Upvote outcome reasons.
const (
	UpvoteReasonAlreadyVoted = "already voted"
	UpvoteReasonNotFound     = "not found"
)

// UpvoteResult is the outcome of an upvote attempt. AlreadyVoted is a normal
// business outcome, not an error.
type UpvoteResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}
