package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yarnia/yarnia/internal/engagement"
	"github.com/yarnia/yarnia/internal/metrics"
	"github.com/yarnia/yarnia/internal/middleware"
	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/repository"
)

// EngagementServiceInterface はフォロー・ブックマークハンドラーが必要とする
// サービスインターフェース。
type EngagementServiceInterface interface {
	// Follow はフォローエッジを作成する。
	Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error)
	// Unfollow はフォローエッジを削除する。
	Unfollow(ctx context.Context, followerID, followingID string) error
	// Counts はフォロワー数とフォロー中数のスナップショットを返す。
	Counts(ctx context.Context, userID string) (*engagement.EngagementCounts, error)
	// CountFollowers はフォロワー数を返す。
	CountFollowers(ctx context.Context, userID string) (int, error)
	// CountFollowing はフォロー中数を返す。
	CountFollowing(ctx context.Context, userID string) (int, error)
	// IsFollowing はフォローエッジの存在を返す。
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// ListFollowers はフォロワーの公開プロフィール一覧を返す。
	ListFollowers(ctx context.Context, userID string) ([]model.PublicProfile, error)
	// ListFollowing はフォロー中ユーザーの公開プロフィール一覧を返す。
	ListFollowing(ctx context.Context, userID string) ([]model.PublicProfile, error)
	// BookmarkStory はブックマークエッジを作成する。
	BookmarkStory(ctx context.Context, userID, storyID string) (*model.Bookmark, error)
	// RemoveBookmark はブックマークエッジを削除する。
	RemoveBookmark(ctx context.Context, userID, storyID string) error
	// ListBookmarks はブックマーク一覧をストーリー情報付きで返す。
	ListBookmarks(ctx context.Context, userID string) ([]repository.BookmarkWithStory, error)
}

// EngagementHandler はフォロー・ブックマーク管理のHTTPハンドラー。
type EngagementHandler struct {
	service EngagementServiceInterface
	metrics metrics.MetricsCollector
}

// NewEngagementHandler はEngagementHandlerを生成する。
func NewEngagementHandler(service EngagementServiceInterface, collector metrics.MetricsCollector) *EngagementHandler {
	return &EngagementHandler{
		service: service,
		metrics: collector,
	}
}

// countResponse は集計値エンドポイントのレスポンス。
type countResponse struct {
	Count int `json:"count"`
}

// isFollowingResponse はフォロー状態照会のレスポンス。
type isFollowingResponse struct {
	IsFollowing bool `json:"is_following"`
}

// Follow は認証ユーザーから対象ユーザーへのフォローを作成する。
// POST /api/users/:id/follow
func (h *EngagementHandler) Follow(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	followingID := chi.URLParam(r, "id")

	follow, err := h.service.Follow(r.Context(), identity.UserID, followingID)
	if err != nil {
		h.recordConflict(err)
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordFollowCreated()
	}
	writeJSON(w, http.StatusCreated, toFollowResponse(follow))
}

// Unfollow は認証ユーザーから対象ユーザーへのフォローを解除する。
// DELETE /api/users/:id/follow
func (h *EngagementHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	followingID := chi.URLParam(r, "id")

	if err := h.service.Unfollow(r.Context(), identity.UserID, followingID); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordFollowDeleted()
	}
	w.WriteHeader(http.StatusNoContent)
}

// FollowersCount はユーザーのフォロワー数を取得する。
// GET /api/users/:id/followers-count
func (h *EngagementHandler) FollowersCount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	count, err := h.service.CountFollowers(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

// FollowingCount はユーザーのフォロー中数を取得する。
// GET /api/users/:id/following-count
func (h *EngagementHandler) FollowingCount(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	count, err := h.service.CountFollowing(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

// IsFollowing はユーザー間のフォロー状態を照会する。
// GET /api/users/:id/is-following/:followingId
func (h *EngagementHandler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	followerID := chi.URLParam(r, "id")
	followingID := chi.URLParam(r, "followingId")

	following, err := h.service.IsFollowing(r.Context(), followerID, followingID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, isFollowingResponse{IsFollowing: following})
}

// Followers はユーザーのフォロワー一覧を取得する。
// GET /api/users/:id/followers
func (h *EngagementHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	profiles, err := h.service.ListFollowers(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPublicProfileResponses(profiles))
}

// Following はユーザーのフォロー中一覧を取得する。
// GET /api/users/:id/following
func (h *EngagementHandler) Following(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	profiles, err := h.service.ListFollowing(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPublicProfileResponses(profiles))
}

// Bookmark は認証ユーザーのブックマークを作成する。
// POST /api/stories/:storyId/bookmarks
func (h *EngagementHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	storyID := chi.URLParam(r, "storyId")

	bookmark, err := h.service.BookmarkStory(r.Context(), identity.UserID, storyID)
	if err != nil {
		h.recordConflict(err)
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordBookmarkCreated()
	}
	writeJSON(w, http.StatusCreated, toCreatedBookmarkResponse(bookmark))
}

// Unbookmark は認証ユーザーのブックマークを削除する。
// DELETE /api/stories/:storyId/bookmarks
func (h *EngagementHandler) Unbookmark(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	storyID := chi.URLParam(r, "storyId")

	if err := h.service.RemoveBookmark(r.Context(), identity.UserID, storyID); err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordBookmarkDeleted()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Bookmarks はユーザーのブックマーク一覧を取得する。
// GET /api/users/:id/bookmarks
func (h *EngagementHandler) Bookmarks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	bookmarks, err := h.service.ListBookmarks(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookmarkResponses(bookmarks))
}

// recordConflict は重複エッジによる競合をメトリクスに記録する。
func (h *EngagementHandler) recordConflict(err error) {
	if h.metrics == nil {
		return
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		return
	}
	switch apiErr.Code {
	case model.ErrCodeDuplicateFollow:
		h.metrics.RecordDuplicateConflict("follow")
	case model.ErrCodeDuplicateBookmark:
		h.metrics.RecordDuplicateConflict("bookmark")
	}
}
