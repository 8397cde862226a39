package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yarnia/yarnia/internal/model"
)

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

const commentColumns = `id, content, user_id, story_id, created_at`

// FindByID は指定IDのコメントを取得する。見つからない場合はnilを返す。
func (r *PostgresCommentRepo) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id,
	).Scan(&comment.ID, &comment.Content, &comment.UserID, &comment.StoryID, &comment.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("コメントの取得に失敗しました: %w", err)
	}
	return comment, nil
}

// Create はコメントを作成する。
// 外部キー違反は不在の親に応じてSTORY_NOT_FOUND / USER_NOT_FOUNDに分類する。
func (r *PostgresCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, content, user_id, story_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.Content, comment.UserID, comment.StoryID, comment.CreatedAt,
	)
	if err != nil {
		if pqErrorCode(err) == pqForeignKeyViolation {
			if pqConstraintName(err) == "comments_story_fk" {
				return model.NewStoryNotFoundError(comment.StoryID)
			}
			return model.NewUserNotFoundError(comment.UserID)
		}
		return fmt.Errorf("コメントの作成に失敗しました: %w", err)
	}
	return nil
}

// ListByStoryID はストーリーに付いたコメント一覧を作成日時の昇順で返す。
func (r *PostgresCommentRepo) ListByStoryID(ctx context.Context, storyID string) ([]*model.Comment, error) {
	return r.queryComments(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE story_id = $1 ORDER BY created_at ASC`,
		storyID)
}

// ListByUserID は指定ユーザーが投稿したコメント一覧を返す。
func (r *PostgresCommentRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Comment, error) {
	return r.queryComments(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

// ListAll は全コメントを作成日時の降順で返す（管理者向け）。
func (r *PostgresCommentRepo) ListAll(ctx context.Context) ([]*model.Comment, error) {
	return r.queryComments(ctx,
		`SELECT `+commentColumns+` FROM comments ORDER BY created_at DESC`)
}

// queryComments はコメント行を走査して返す。
func (r *PostgresCommentRepo) queryComments(ctx context.Context, query string, args ...any) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		comment := &model.Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.UserID, &comment.StoryID, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("コメント行の読み取りに失敗しました: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("コメント一覧の走査に失敗しました: %w", err)
	}
	return comments, nil
}

// DeleteByID は指定IDのコメントを削除する。見つからない場合はCOMMENT_NOT_FOUNDを返す。
func (r *PostgresCommentRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("コメントの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewCommentNotFoundError(id)
	}
	return nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
