package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/hub"
	"github.com/jagriti-aswal/Communitychat2/internal/service"
)

type fakeChatService struct {
	messages []domain.ChatMessage
	err      error
}

func (f *fakeChatService) HandleJoinRoom(ctx context.Context, c *hub.Client, room string) error {
	return nil
}

func (f *fakeChatService) HandleLeaveRoom(ctx context.Context, c *hub.Client, room string) error {
	return nil
}

func (f *fakeChatService) HandleChatMessage(ctx context.Context, c *hub.Client, room, sender, body string) error {
	return nil
}

func (f *fakeChatService) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	return nil
}

func (f *fakeChatService) ListMessages(ctx context.Context, room string) ([]domain.ChatMessage, error) {
	return f.messages, f.err
}

type fakeQuestionService struct {
	questions    []domain.Question
	created      *domain.Question
	createErr    error
	upvoteResult *domain.UpvoteResult
	upvoteErr    error
	comment      *domain.Comment
	commentErr   error
}

func (f *fakeQuestionService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return f.questions, nil
}

func (f *fakeQuestionService) CreateQuestion(ctx context.Context, title, body, username string) (*domain.Question, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeQuestionService) Upvote(ctx context.Context, questionID, userID string) (*domain.UpvoteResult, error) {
	if f.upvoteErr != nil {
		return nil, f.upvoteErr
	}
	return f.upvoteResult, nil
}

func (f *fakeQuestionService) AddComment(ctx context.Context, questionID, body, username string) (*domain.Comment, error) {
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	return f.comment, nil
}

func setupRouter(chat *fakeChatService, questions *fakeQuestionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(chat, questions).RegisterRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListMessages(t *testing.T) {
	chat := &fakeChatService{messages: []domain.ChatMessage{
		{ID: "1", Room: "clinic-1", Sender: "alice", Body: "hi", CreatedAt: time.Now()},
	}}
	r := setupRouter(chat, &fakeQuestionService{})

	w := doRequest(r, http.MethodGet, "/api/v1/messages/clinic-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Messages []domain.ChatMessage `json:"messages"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || len(resp.Data.Messages) != 1 {
		t.Errorf("response = %s", w.Body.String())
	}
}

func TestListQuestions(t *testing.T) {
	questions := &fakeQuestionService{questions: []domain.Question{
		{ID: "q-2", Title: "newer"},
		{ID: "q-1", Title: "older"},
	}}
	r := setupRouter(&fakeChatService{}, questions)

	w := doRequest(r, http.MethodGet, "/api/v1/questions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Questions []domain.Question `json:"questions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data.Questions) != 2 || resp.Data.Questions[0].Title != "newer" {
		t.Errorf("response = %s", w.Body.String())
	}
}

func TestCreateQuestion(t *testing.T) {
	questions := &fakeQuestionService{created: &domain.Question{ID: "q-1", Title: "title"}}
	r := setupRouter(&fakeChatService{}, questions)

	w := doRequest(r, http.MethodPost, "/api/v1/questions",
		`{"title":"title","body":"body","username":"alice"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestCreateQuestionMissingTitle(t *testing.T) {
	r := setupRouter(&fakeChatService{}, &fakeQuestionService{})

	w := doRequest(r, http.MethodPost, "/api/v1/questions",
		`{"title":"","body":"body","username":"alice"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpvoteOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.UpvoteResult
		wantStatus int
		wantReason string
	}{
		{"success", &domain.UpvoteResult{Success: true}, http.StatusOK, ""},
		{"already voted", &domain.UpvoteResult{Success: false, Reason: domain.UpvoteReasonAlreadyVoted}, http.StatusOK, "already voted"},
		{"not found", &domain.UpvoteResult{Success: false, Reason: domain.UpvoteReasonNotFound}, http.StatusNotFound, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := &fakeQuestionService{upvoteResult: tt.result}
			r := setupRouter(&fakeChatService{}, questions)

			w := doRequest(r, http.MethodPost, "/api/v1/questions/q-1/upvote", `{"userId":"u1"}`)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var got domain.UpvoteResult
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Success != tt.result.Success || got.Reason != tt.wantReason {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestUpvoteMissingUserID(t *testing.T) {
	r := setupRouter(&fakeChatService{}, &fakeQuestionService{})

	w := doRequest(r, http.MethodPost, "/api/v1/questions/q-1/upvote", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAddCommentNotFound(t *testing.T) {
	questions := &fakeQuestionService{commentErr: service.ErrQuestionNotFound}
	r := setupRouter(&fakeChatService{}, questions)

	w := doRequest(r, http.MethodPost, "/api/v1/questions/missing/comments",
		`{"body":"nice","username":"bob"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
