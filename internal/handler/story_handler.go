package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yarnia/yarnia/internal/metrics"
	"github.com/yarnia/yarnia/internal/middleware"
	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/story"
)

// StoryServiceInterface はストーリーハンドラーが必要とするサービスインターフェース。
type StoryServiceInterface interface {
	// List は全ストーリーを作成日時の降順で返す。
	List(ctx context.Context) ([]*model.Story, error)
	// Get は指定IDのストーリーを返す。
	Get(ctx context.Context, storyID string) (*model.Story, error)
	// Create は新しいストーリーを投稿する。
	Create(ctx context.Context, authorID string, input story.StoryInput) (*model.Story, error)
	// Update はストーリーを更新する（作者本人のみ）。
	Update(ctx context.Context, userID, storyID string, input story.StoryInput) (*model.Story, error)
	// Delete はストーリーと依存レコードを削除する（作者または管理者）。
	Delete(ctx context.Context, userID string, isAdmin bool, storyID string) error
}

// StoryHandler はストーリー管理のHTTPハンドラー。
type StoryHandler struct {
	service StoryServiceInterface
	metrics metrics.MetricsCollector
}

// NewStoryHandler はStoryHandlerを生成する。
func NewStoryHandler(service StoryServiceInterface, collector metrics.MetricsCollector) *StoryHandler {
	return &StoryHandler{
		service: service,
		metrics: collector,
	}
}

// storyRequest はストーリー作成・更新リクエストのボディ。
type storyRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Summary    *string `json:"summary"`
	Genre      string  `json:"genre"`
	PictureURL *string `json:"picture_url"`
}

// List は全ストーリー一覧を取得する。
// GET /api/stories
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	stories, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoryResponses(stories))
}

// Get はストーリー詳細を取得する。
// GET /api/stories/:storyId
func (h *StoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyId")

	s, err := h.service.Get(r.Context(), storyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoryResponse(s))
}

// Create は新しいストーリーを投稿する。
// POST /api/stories
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	s, err := h.service.Create(r.Context(), identity.UserID, story.StoryInput{
		Title:      req.Title,
		Content:    req.Content,
		Summary:    req.Summary,
		Genre:      req.Genre,
		PictureURL: req.PictureURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStoryResponse(s))
}

// Update はストーリーを更新する。
// PUT /api/stories/:storyId
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	storyID := chi.URLParam(r, "storyId")

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	s, err := h.service.Update(r.Context(), identity.UserID, storyID, story.StoryInput{
		Title:      req.Title,
		Content:    req.Content,
		Summary:    req.Summary,
		Genre:      req.Genre,
		PictureURL: req.PictureURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoryResponse(s))
}

// Delete はストーリーと依存レコードを削除する。
// DELETE /api/stories/:storyId
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	storyID := chi.URLParam(r, "storyId")

	start := time.Now()
	if err := h.service.Delete(r.Context(), identity.UserID, identity.IsAdmin, storyID); err != nil {
		handleServiceError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordCascadeLatency("story", time.Since(start))
	}

	w.WriteHeader(http.StatusNoContent)
}
