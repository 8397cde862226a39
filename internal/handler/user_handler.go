package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yarnia/yarnia/internal/metrics"
	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// GetProfile はユーザーの公開プロフィールを投稿ストーリー付きで返す。
	GetProfile(ctx context.Context, userID string) (*user.Profile, error)
	// List は全ユーザーを返す（管理者向け）。
	List(ctx context.Context) ([]*model.User, error)
	// Delete はユーザーと全依存レコードを単一トランザクションで削除する（管理者向け）。
	Delete(ctx context.Context, userID string) error
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
	metrics metrics.MetricsCollector
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface, collector metrics.MetricsCollector) *UserHandler {
	return &UserHandler{
		service: service,
		metrics: collector,
	}
}

// profileResponse は公開プロフィールと投稿ストーリーのAPIレスポンス。
type profileResponse struct {
	User    publicProfileResponse `json:"user"`
	Stories []storyResponse       `json:"stories"`
}

// GetProfile はユーザーの公開プロフィールを取得する。
// GET /api/users/:id
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		User:    toPublicProfileResponse(profile.User),
		Stories: toStoryResponses(profile.Stories),
	})
}

// List は全ユーザー一覧を取得する。
// GET /api/users（管理者のみ）
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]userResponse, len(users))
	for i, u := range users {
		results[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, results)
}

// Delete はユーザーと全依存レコードを削除する。
// DELETE /api/users/:id（管理者のみ）
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	start := time.Now()
	if err := h.service.Delete(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordCascadeLatency("user", time.Since(start))
	}

	w.WriteHeader(http.StatusNoContent)
}
