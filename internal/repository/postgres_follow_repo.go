package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yarnia/yarnia/internal/model"
)

// PostgresFollowRepo はPostgreSQLを使用したフォローエッジリポジトリ。
// 重複エッジと自己フォローの排除はINSERT時の制約違反として検出する。
// 事前のSELECTによるcheck-then-insertは並行挿入に対して競合するため行わない。
type PostgresFollowRepo struct {
	db *sql.DB
}

// NewPostgresFollowRepo はPostgresFollowRepoを生成する。
func NewPostgresFollowRepo(db *sql.DB) *PostgresFollowRepo {
	return &PostgresFollowRepo{db: db}
}

// Create はフォローエッジを挿入する。
// 制約違反はAPIErrorに分類して返す: 複合主キー違反→DUPLICATE_FOLLOW、
// CHECK違反→SELF_FOLLOW、外部キー違反→USER_NOT_FOUND。
func (r *PostgresFollowRepo) Create(ctx context.Context, followerID, followingID string) (*model.Follow, error) {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, following_id, created_at)
		 VALUES ($1, $2, $3)`,
		followerID, followingID, now,
	)
	if err != nil {
		if apiErr := classifyFollowInsertError(err, followerID, followingID); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("フォローエッジの挿入に失敗しました: %w", err)
	}

	return &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   now,
	}, nil
}

// Delete はフォローエッジを削除する。エッジが存在しない場合はFOLLOW_NOT_FOUNDを返す。
func (r *PostgresFollowRepo) Delete(ctx context.Context, followerID, followingID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID,
	)
	if err != nil {
		return fmt.Errorf("フォローエッジの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewFollowNotFoundError()
	}
	return nil
}

// CountFollowers は指定ユーザーをフォローしているエッジ数を返す。
// 読み取りは現在のスナップショットに対して行い、並行書き込みとの線形化は要求しない。
func (r *PostgresFollowRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE following_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("フォロワー数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// CountFollowing は指定ユーザーがフォローしているエッジ数を返す。
func (r *PostgresFollowRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("フォロー数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// IsFollowing はフォローエッジの存在を返す。存在しないペアでもエラーにならない。
func (r *PostgresFollowRepo) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2
		 )`,
		followerID, followingID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("フォロー状態の取得に失敗しました: %w", err)
	}
	return exists, nil
}

// ListFollowers は指定ユーザーのフォロワーの公開プロフィール一覧を返す。
func (r *PostgresFollowRepo) ListFollowers(ctx context.Context, userID string) ([]model.PublicProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.bio, u.profile_pic
		 FROM follows f
		 JOIN users u ON u.id = f.follower_id
		 WHERE f.following_id = $1
		 ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("フォロワー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// ListFollowing は指定ユーザーがフォロー中のユーザーの公開プロフィール一覧を返す。
func (r *PostgresFollowRepo) ListFollowing(ctx context.Context, userID string) ([]model.PublicProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.bio, u.profile_pic
		 FROM follows f
		 JOIN users u ON u.id = f.following_id
		 WHERE f.follower_id = $1
		 ORDER BY f.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("フォロー中一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// scanProfiles は公開プロフィール行を走査して返す。
func scanProfiles(rows *sql.Rows) ([]model.PublicProfile, error) {
	var profiles []model.PublicProfile
	for rows.Next() {
		var p model.PublicProfile
		var profilePic sql.NullString
		if err := rows.Scan(&p.ID, &p.Username, &p.Bio, &profilePic); err != nil {
			return nil, fmt.Errorf("プロフィール行の読み取りに失敗しました: %w", err)
		}
		if profilePic.Valid {
			p.ProfilePic = &profilePic.String
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("プロフィール一覧の走査に失敗しました: %w", err)
	}
	return profiles, nil
}

// compile-time interface check
var _ FollowRepository = (*PostgresFollowRepo)(nil)
