package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/service"
	"github.com/jagriti-aswal/Communitychat2/pkg/log"
	"github.com/jagriti-aswal/Communitychat2/pkg/response"
)

// Handler handles the REST surface: message history and the Q&A board.
type Handler struct {
	chatService     service.ChatService
	questionService service.QuestionService
}

// NewHandler creates a new HTTP handler.
func NewHandler(chatService service.ChatService, questionService service.QuestionService) *Handler {
	return &Handler{
		chatService:     chatService,
		questionService: questionService,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/messages/:room", h.ListMessages)

		questions := api.Group("/questions")
		{
			questions.GET("", h.ListQuestions)
			questions.POST("", h.CreateQuestion)
			questions.POST("/:id/upvote", h.Upvote)
			questions.POST("/:id/comments", h.AddComment)
		}
	}
}

// ListMessages returns a room's chat history, oldest first.
func (h *Handler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	room := c.Param("room")

	messages, err := h.chatService.ListMessages(ctx, room)
	if err != nil {
		l.Error().Err(err).Str(log.FieldRoom, room).Msg("failed to list messages")
		response.InternalError(c, "failed to list messages")
		return
	}

	response.Success(c, gin.H{"messages": messages})
}

// ListQuestions returns all questions, newest first.
func (h *Handler) ListQuestions(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	questions, err := h.questionService.ListQuestions(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to list questions")
		response.InternalError(c, "failed to list questions")
		return
	}

	response.Success(c, gin.H{"questions": questions})
}

// CreateQuestion creates a new question.
func (h *Handler) CreateQuestion(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create question request")
		response.BadRequest(c, err.Error())
		return
	}

	question, err := h.questionService.CreateQuestion(ctx, req.Title, req.Body, req.Username)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			response.BadRequest(c, err.Error())
			return
		}
		l.Error().Err(err).Msg("failed to create question")
		response.InternalError(c, "failed to create question")
		return
	}

	response.Created(c, question)
}

// Upvote applies one vote on a question. The response keeps the flat
// {success, reason} shape the chat frontend expects: success and
// already-voted answer 200, unknown question answers 404.
func (h *Handler) Upvote(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	questionID := c.Param("id")

	var req domain.UpvoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind upvote request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.questionService.Upvote(ctx, questionID, req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			response.BadRequest(c, err.Error())
			return
		}
		l.Error().Err(err).Str(log.FieldQuestionID, questionID).Msg("failed to upvote question")
		response.InternalError(c, "failed to upvote question")
		return
	}

	if !result.Success && result.Reason == domain.UpvoteReasonNotFound {
		c.JSON(http.StatusNotFound, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddComment appends a comment to a question.
func (h *Handler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	questionID := c.Param("id")

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind comment request")
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.questionService.AddComment(ctx, questionID, req.Body, req.Username)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.NotFound(c, "question not found")
			return
		}
		l.Error().Err(err).Str(log.FieldQuestionID, questionID).Msg("failed to add comment")
		response.InternalError(c, "failed to add comment")
		return
	}

	response.Created(c, comment)
}
