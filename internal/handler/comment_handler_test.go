package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yarnia/yarnia/internal/model"
)

// --- モック定義 ---

// mockCommentService はCommentServiceInterfaceのモック実装。
type mockCommentService struct {
	listByStoryFn func(ctx context.Context, storyID string) ([]*model.Comment, error)
	listByUserFn  func(ctx context.Context, userID string) ([]*model.Comment, error)
	listAllFn     func(ctx context.Context) ([]*model.Comment, error)
	createFn      func(ctx context.Context, userID, storyID, content string) (*model.Comment, error)
	deleteFn      func(ctx context.Context, userID string, isAdmin bool, commentID string) error
}

func (m *mockCommentService) ListByStory(ctx context.Context, storyID string) ([]*model.Comment, error) {
	if m.listByStoryFn != nil {
		return m.listByStoryFn(ctx, storyID)
	}
	return nil, nil
}

func (m *mockCommentService) ListByUser(ctx context.Context, userID string) ([]*model.Comment, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCommentService) ListAll(ctx context.Context) ([]*model.Comment, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockCommentService) Create(ctx context.Context, userID, storyID, content string) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, storyID, content)
	}
	return nil, nil
}

func (m *mockCommentService) Delete(ctx context.Context, userID string, isAdmin bool, commentID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, isAdmin, commentID)
	}
	return nil
}

func testComment() *model.Comment {
	return &model.Comment{
		ID:        "comment-1",
		Content:   "素晴らしい物語でした。",
		UserID:    "user-2",
		StoryID:   "story-1",
		CreatedAt: time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC),
	}
}

// --- GET /api/stories/:storyId/comments テスト ---

func TestCommentHandler_ListByStory_Success(t *testing.T) {
	svc := &mockCommentService{
		listByStoryFn: func(ctx context.Context, storyID string) ([]*model.Comment, error) {
			if storyID != "story-1" {
				t.Errorf("storyID = %q, want %q", storyID, "story-1")
			}
			return []*model.Comment{testComment()}, nil
		},
	}

	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/story-1/comments", nil)
	req = withChiURLParam(req, "storyId", "story-1")
	w := httptest.NewRecorder()

	h.ListByStory(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("result length = %d, want 1", len(result))
	}
	if result[0]["content"] != "素晴らしい物語でした。" {
		t.Errorf("content = %v, want %q", result[0]["content"], "素晴らしい物語でした。")
	}
}

func TestCommentHandler_ListByStory_Empty(t *testing.T) {
	svc := &mockCommentService{
		listByStoryFn: func(ctx context.Context, storyID string) ([]*model.Comment, error) {
			return []*model.Comment{}, nil
		},
	}

	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/story-1/comments", nil)
	req = withChiURLParam(req, "storyId", "story-1")
	w := httptest.NewRecorder()

	h.ListByStory(w, req)

	var result []map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("result length = %d, want 0", len(result))
	}
}

// --- POST /api/stories/:storyId/comments テスト ---

func TestCommentHandler_Create_Success(t *testing.T) {
	svc := &mockCommentService{
		createFn: func(ctx context.Context, userID, storyID, content string) (*model.Comment, error) {
			if userID != "user-2" {
				t.Errorf("userID = %q, want %q", userID, "user-2")
			}
			if storyID != "story-1" {
				t.Errorf("storyID = %q, want %q", storyID, "story-1")
			}
			return testComment(), nil
		},
	}

	h := NewCommentHandler(svc)

	body := `{"content": "素晴らしい物語でした。"}`
	req := httptest.NewRequest(http.MethodPost, "/api/stories/story-1/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, "user-2", false)
	req = withChiURLParam(req, "storyId", "story-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestCommentHandler_Create_StoryNotFound(t *testing.T) {
	svc := &mockCommentService{
		createFn: func(ctx context.Context, userID, storyID, content string) (*model.Comment, error) {
			return nil, model.NewStoryNotFoundError(storyID)
		},
	}

	h := NewCommentHandler(svc)

	body := `{"content": "コメント"}`
	req := httptest.NewRequest(http.MethodPost, "/api/stories/nonexistent/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, "user-2", false)
	req = withChiURLParam(req, "storyId", "nonexistent")
	w := httptest.NewRecorder()

	h.Create(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestCommentHandler_Create_NoIdentity_ReturnsUnauthorized(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{})

	body := `{"content": "コメント"}`
	req := httptest.NewRequest(http.MethodPost, "/api/stories/story-1/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req = withChiURLParam(req, "storyId", "story-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestCommentHandler_Create_InvalidJSON(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/stories/story-1/comments", bytes.NewBufferString(`{invalid`))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, "user-2", false)
	req = withChiURLParam(req, "storyId", "story-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

// --- DELETE /api/stories/:storyId/comments/:commentId テスト ---

func TestCommentHandler_Delete_Success(t *testing.T) {
	deleteCalled := false
	svc := &mockCommentService{
		deleteFn: func(ctx context.Context, userID string, isAdmin bool, commentID string) error {
			deleteCalled = true
			if commentID != "comment-1" {
				t.Errorf("commentID = %q, want %q", commentID, "comment-1")
			}
			return nil
		},
	}

	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/stories/story-1/comments/comment-1", nil)
	req = withIdentity(req, "user-2", false)
	req = withChiURLParam(req, "commentId", "comment-1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if !deleteCalled {
		t.Error("expected Delete to be called")
	}
}

func TestCommentHandler_Delete_NotOwner_ReturnsForbidden(t *testing.T) {
	svc := &mockCommentService{
		deleteFn: func(ctx context.Context, userID string, isAdmin bool, commentID string) error {
			return model.NewForbiddenError()
		},
	}

	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/stories/story-1/comments/comment-1", nil)
	req = withIdentity(req, "other-user", false)
	req = withChiURLParam(req, "commentId", "comment-1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestCommentHandler_Delete_NotFound(t *testing.T) {
	svc := &mockCommentService{
		deleteFn: func(ctx context.Context, userID string, isAdmin bool, commentID string) error {
			return model.NewCommentNotFoundError(commentID)
		},
	}

	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/stories/story-1/comments/nonexistent", nil)
	req = withIdentity(req, "user-2", false)
	req = withChiURLParam(req, "commentId", "nonexistent")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

// --- GET /api/users/:id/comments テスト ---

func TestCommentHandler_ListByUser_Success(t *testing.T) {
	svc := &mockCommentService{
		listByUserFn: func(ctx context.Context, userID string) ([]*model.Comment, error) {
			if userID != "user-2" {
				t.Errorf("userID = %q, want %q", userID, "user-2")
			}
			return []*model.Comment{testComment()}, nil
		},
	}

	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-2/comments", nil)
	req = withChiURLParam(req, "id", "user-2")
	w := httptest.NewRecorder()

	h.ListByUser(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

// --- GET /api/comments テスト ---

func TestCommentHandler_ListAll_Success(t *testing.T) {
	svc := &mockCommentService{
		listAllFn: func(ctx context.Context) ([]*model.Comment, error) {
			return []*model.Comment{testComment()}, nil
		},
	}

	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)
	req = withIdentity(req, "admin-1", true)
	w := httptest.NewRecorder()

	h.ListAll(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("result length = %d, want 1", len(result))
	}
}
