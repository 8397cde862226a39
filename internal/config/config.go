package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// BookmarkOrder はブックマーク一覧の並び順を表す。
type BookmarkOrder string

const (
	// BookmarkOrderNewestFirst は作成日時の降順（新しい順）。既定値。
	BookmarkOrderNewestFirst BookmarkOrder = "newest_first"
	// BookmarkOrderOldestFirst は作成日時の昇順（古い順）。
	BookmarkOrderOldestFirst BookmarkOrder = "oldest_first"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Token
	JWTSecret string
	TokenTTL  time.Duration

	// Auth
	BcryptCost int

	// Rate Limit
	RateLimitGeneral  int
	RateLimitMutation int

	// Bookmark
	// 一覧の並び順。ハードな契約ではないため設定で変更できる。
	BookmarkListOrder BookmarkOrder

	// Picture URL
	// 有効にすると画像URLの保存前にHEADリクエストで到達確認を行う。
	ProbePictureURLs bool

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", time.Hour)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", 10)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitMutation = getEnvInt("RATE_LIMIT_MUTATION", 30)
	cfg.BookmarkListOrder = parseBookmarkOrder(os.Getenv("BOOKMARK_LIST_ORDER"))
	cfg.ProbePictureURLs = getEnvBool("PROBE_PICTURE_URLS", false)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

// parseBookmarkOrder は並び順設定を解析する。未知の値は既定値にフォールバックする。
func parseBookmarkOrder(v string) BookmarkOrder {
	switch BookmarkOrder(v) {
	case BookmarkOrderOldestFirst:
		return BookmarkOrderOldestFirst
	default:
		return BookmarkOrderNewestFirst
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
