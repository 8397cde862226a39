package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yarnia/yarnia/internal/metrics"
	"github.com/yarnia/yarnia/internal/middleware"
)

// HealthChecker はヘルスチェックで疎通確認する依存。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// ヘルスチェック（nilの場合は疎通確認なしで200を返す）
	HealthChecker HealthChecker

	// /metrics ハンドラー（nilの場合は未登録）
	MetricsHandler http.Handler

	// 認証
	AuthService AuthServiceInterface

	// ストーリー
	StoryService StoryServiceInterface

	// コメント
	CommentService CommentServiceInterface

	// ユーザー
	UserService UserServiceInterface

	// フォロー・ブックマーク
	EngagementService EngagementServiceInterface

	// メトリクス（nilの場合は記録しない）
	Metrics metrics.MetricsCollector
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//	→ AuthMiddleware → RateLimitMiddleware(GeneralMiddleware)
//
// 読み取り系のルート（ストーリー閲覧、プロフィール、フォロー集計など）は
// 認証チェーンの外に配置する。書き込み系には変更専用レート制限を追加する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	authHandler := NewAuthHandler(deps.AuthService)
	storyHandler := NewStoryHandler(deps.StoryService, deps.Metrics)
	commentHandler := NewCommentHandler(deps.CommentService)
	userHandler := NewUserHandler(deps.UserService, deps.Metrics)
	engagementHandler := NewEngagementHandler(deps.EngagementService, deps.Metrics)

	// --- 認証不要のルート ---

	// 死活監視
	r.Get("/health", newHealthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// アカウント登録・ログイン
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// 公開読み取り
	r.Get("/api/stories", storyHandler.List)
	r.Get("/api/stories/{storyId}", storyHandler.Get)
	r.Get("/api/stories/{storyId}/comments", commentHandler.ListByStory)

	r.Route("/api/users/{id}", func(r chi.Router) {
		r.Get("/", userHandler.GetProfile)
		r.Get("/comments", commentHandler.ListByUser)

		// フォロー集計・一覧
		r.Get("/followers-count", engagementHandler.FollowersCount)
		r.Get("/following-count", engagementHandler.FollowingCount)
		r.Get("/followers", engagementHandler.Followers)
		r.Get("/following", engagementHandler.Following)

		// ブックマーク一覧
		r.Get("/bookmarks", engagementHandler.Bookmarks)

		// フォロー状態照会
		r.Get("/is-following/{followingId}", engagementHandler.IsFollowing)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		mutation := deps.RateLimiter.MutationMiddleware()

		r.Get("/api/auth/me", authHandler.Me)

		// ストーリー管理
		r.With(mutation).Post("/api/stories", storyHandler.Create)
		r.Route("/api/stories/{storyId}", func(r chi.Router) {
			r.With(mutation).Put("/", storyHandler.Update)
			r.With(mutation).Delete("/", storyHandler.Delete)

			// コメント投稿・削除
			r.With(mutation).Post("/comments", commentHandler.Create)
			r.With(mutation).Delete("/comments/{commentId}", commentHandler.Delete)

			// ブックマーク
			r.With(mutation).Post("/bookmarks", engagementHandler.Bookmark)
			r.With(mutation).Delete("/bookmarks", engagementHandler.Unbookmark)
		})

		// フォロー
		r.With(mutation).Post("/api/users/{id}/follow", engagementHandler.Follow)
		r.With(mutation).Delete("/api/users/{id}/follow", engagementHandler.Unfollow)

		// --- 管理者専用のルート ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewRequireAdminMiddleware())

			r.Get("/api/users", userHandler.List)
			r.With(mutation).Delete("/api/users/{id}", userHandler.Delete)
			r.Get("/api/comments", commentHandler.ListAll)
		})
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("ヘルスチェック失敗", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
