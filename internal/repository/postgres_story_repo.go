package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yarnia/yarnia/internal/model"
)

// PostgresStoryRepo はPostgreSQLを使用したストーリーリポジトリ。
type PostgresStoryRepo struct {
	db *sql.DB
}

// NewPostgresStoryRepo はPostgresStoryRepoを生成する。
func NewPostgresStoryRepo(db *sql.DB) *PostgresStoryRepo {
	return &PostgresStoryRepo{db: db}
}

const storyColumns = `id, title, content, summary, genre, author_id, created_at, picture_url`

// FindByID は指定IDのストーリーを取得する。見つからない場合はnilを返す。
func (r *PostgresStoryRepo) FindByID(ctx context.Context, id string) (*model.Story, error) {
	story := &model.Story{}
	var summary, pictureURL sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT `+storyColumns+` FROM stories WHERE id = $1`, id,
	).Scan(
		&story.ID, &story.Title, &story.Content, &summary,
		&story.Genre, &story.AuthorID, &story.CreatedAt, &pictureURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ストーリーの取得に失敗しました: %w", err)
	}

	if summary.Valid {
		story.Summary = &summary.String
	}
	if pictureURL.Valid {
		story.PictureURL = &pictureURL.String
	}
	return story, nil
}

// List は全ストーリーを作成日時の降順で取得する。
func (r *PostgresStoryRepo) List(ctx context.Context) ([]*model.Story, error) {
	return r.queryStories(ctx,
		`SELECT `+storyColumns+` FROM stories ORDER BY created_at DESC`)
}

// ListByAuthorID は指定ユーザーが投稿したストーリー一覧を返す。
func (r *PostgresStoryRepo) ListByAuthorID(ctx context.Context, authorID string) ([]*model.Story, error) {
	return r.queryStories(ctx,
		`SELECT `+storyColumns+` FROM stories WHERE author_id = $1 ORDER BY created_at DESC`,
		authorID)
}

// queryStories はストーリー行を走査して返す。
func (r *PostgresStoryRepo) queryStories(ctx context.Context, query string, args ...any) ([]*model.Story, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ストーリー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var stories []*model.Story
	for rows.Next() {
		story := &model.Story{}
		var summary, pictureURL sql.NullString
		if err := rows.Scan(
			&story.ID, &story.Title, &story.Content, &summary,
			&story.Genre, &story.AuthorID, &story.CreatedAt, &pictureURL,
		); err != nil {
			return nil, fmt.Errorf("ストーリー行の読み取りに失敗しました: %w", err)
		}
		if summary.Valid {
			story.Summary = &summary.String
		}
		if pictureURL.Valid {
			story.PictureURL = &pictureURL.String
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ストーリー一覧の走査に失敗しました: %w", err)
	}
	return stories, nil
}

// Create はストーリーを作成する。
// 作者の外部キー違反はAPIError(USER_NOT_FOUND)、ジャンルのCHECK違反は
// APIError(INVALID_GENRE)に分類する。
func (r *PostgresStoryRepo) Create(ctx context.Context, story *model.Story) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stories (id, title, content, summary, genre, author_id, created_at, picture_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		story.ID, story.Title, story.Content, story.Summary,
		story.Genre, story.AuthorID, story.CreatedAt, story.PictureURL,
	)
	if err != nil {
		switch pqErrorCode(err) {
		case pqForeignKeyViolation:
			return model.NewUserNotFoundError(story.AuthorID)
		case pqCheckViolation:
			return model.NewInvalidGenreError(string(story.Genre))
		}
		return fmt.Errorf("ストーリーの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はストーリーのタイトル・概要・本文・画像URLを更新する。
// 作者と作成日時は変更しない。
func (r *PostgresStoryRepo) Update(ctx context.Context, story *model.Story) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE stories SET title = $2, summary = $3, content = $4, picture_url = $5
		 WHERE id = $1`,
		story.ID, story.Title, story.Summary, story.Content, story.PictureURL,
	)
	if err != nil {
		return fmt.Errorf("ストーリーの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewStoryNotFoundError(story.ID)
	}
	return nil
}

// compile-time interface check
var _ StoryRepository = (*PostgresStoryRepo)(nil)
