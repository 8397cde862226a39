package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yarnia/yarnia/internal/config"
	"github.com/yarnia/yarnia/internal/model"
)

// PostgresBookmarkRepo はPostgreSQLを使用したブックマークエッジリポジトリ。
// 重複ブックマークの排除はINSERT時のUNIQUE制約違反として検出する。
type PostgresBookmarkRepo struct {
	db    *sql.DB
	order config.BookmarkOrder
}

// NewPostgresBookmarkRepo はPostgresBookmarkRepoを生成する。
// orderは一覧取得時の並び順（既定は新しい順）。
func NewPostgresBookmarkRepo(db *sql.DB, order config.BookmarkOrder) *PostgresBookmarkRepo {
	if order == "" {
		order = config.BookmarkOrderNewestFirst
	}
	return &PostgresBookmarkRepo{db: db, order: order}
}

// Create はブックマークエッジをサーバー付与のタイムスタンプ付きで挿入する。
// UNIQUE違反→DUPLICATE_BOOKMARK、外部キー違反→STORY_NOT_FOUND / USER_NOT_FOUND。
func (r *PostgresBookmarkRepo) Create(ctx context.Context, userID, storyID string) (*model.Bookmark, error) {
	bookmark := &model.Bookmark{
		ID:        uuid.New().String(),
		UserID:    userID,
		StoryID:   storyID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, user_id, story_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		bookmark.ID, bookmark.UserID, bookmark.StoryID, bookmark.CreatedAt,
	)
	if err != nil {
		if apiErr := classifyBookmarkInsertError(err, userID, storyID); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("ブックマークの挿入に失敗しました: %w", err)
	}

	return bookmark, nil
}

// Delete はブックマークエッジを削除する。存在しない場合はBOOKMARK_NOT_FOUNDを返す。
func (r *PostgresBookmarkRepo) Delete(ctx context.Context, userID, storyID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND story_id = $2`,
		userID, storyID,
	)
	if err != nil {
		return fmt.Errorf("ブックマークの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewBookmarkNotFoundError()
	}
	return nil
}

// Exists はブックマークエッジの存在を返す。
func (r *PostgresBookmarkRepo) Exists(ctx context.Context, userID, storyID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM bookmarks WHERE user_id = $1 AND story_id = $2
		 )`,
		userID, storyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ブックマーク状態の取得に失敗しました: %w", err)
	}
	return exists, nil
}

// ListByUserID はユーザーのブックマーク一覧をストーリー情報付きで返す。
// 並び順はリポジトリ生成時の設定に従う。
func (r *PostgresBookmarkRepo) ListByUserID(ctx context.Context, userID string) ([]BookmarkWithStory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.user_id, b.story_id, b.created_at,
		        s.title, s.genre, s.author_id, s.summary
		 FROM bookmarks b
		 JOIN stories s ON s.id = b.story_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at `+r.orderDirection(),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ブックマーク一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var results []BookmarkWithStory
	for rows.Next() {
		var bws BookmarkWithStory
		var summary sql.NullString
		if err := rows.Scan(
			&bws.ID, &bws.UserID, &bws.StoryID, &bws.CreatedAt,
			&bws.StoryTitle, &bws.StoryGenre, &bws.AuthorID, &summary,
		); err != nil {
			return nil, fmt.Errorf("ブックマーク行の読み取りに失敗しました: %w", err)
		}
		if summary.Valid {
			bws.StorySummary = &summary.String
		}
		results = append(results, bws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ブックマーク一覧の走査に失敗しました: %w", err)
	}
	return results, nil
}

// orderDirection は一覧取得時のORDER BY方向を返す。
func (r *PostgresBookmarkRepo) orderDirection() string {
	if r.order == config.BookmarkOrderOldestFirst {
		return "ASC"
	}
	return "DESC"
}

// compile-time interface check
var _ BookmarkRepository = (*PostgresBookmarkRepo)(nil)
