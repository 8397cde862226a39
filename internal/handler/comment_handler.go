package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yarnia/yarnia/internal/middleware"
	"github.com/yarnia/yarnia/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	// ListByStory は指定ストーリーのコメントを返す。
	ListByStory(ctx context.Context, storyID string) ([]*model.Comment, error)
	// ListByUser は指定ユーザーが投稿したコメントを返す。
	ListByUser(ctx context.Context, userID string) ([]*model.Comment, error)
	// ListAll は全コメントを返す（管理者向け）。
	ListAll(ctx context.Context) ([]*model.Comment, error)
	// Create はストーリーへコメントを投稿する。
	Create(ctx context.Context, userID, storyID, content string) (*model.Comment, error)
	// Delete はコメントを削除する（投稿者または管理者）。
	Delete(ctx context.Context, userID string, isAdmin bool, commentID string) error
}

// CommentHandler はコメント管理のHTTPハンドラー。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

// commentCreateRequest はコメント投稿リクエストのボディ。
type commentCreateRequest struct {
	Content string `json:"content"`
}

// ListByStory はストーリーのコメント一覧を取得する。
// GET /api/stories/:storyId/comments
func (h *CommentHandler) ListByStory(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyId")

	comments, err := h.service.ListByStory(r.Context(), storyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

// ListByUser はユーザーのコメント一覧を取得する。
// GET /api/users/:id/comments
func (h *CommentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	comments, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

// ListAll は全コメント一覧を取得する（管理者向け）。
// GET /api/comments
func (h *CommentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

// Create はストーリーへコメントを投稿する。
// POST /api/stories/:storyId/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	storyID := chi.URLParam(r, "storyId")

	var req commentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	comment, err := h.service.Create(r.Context(), identity.UserID, storyID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// Delete はコメントを削除する。
// DELETE /api/stories/:storyId/comments/:commentId
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	commentID := chi.URLParam(r, "commentId")

	if err := h.service.Delete(r.Context(), identity.UserID, identity.IsAdmin, commentID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
