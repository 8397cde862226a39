package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yarnia/yarnia/internal/model"
)

// PostgresCascadeRepo はPostgreSQLを使用したカスケード削除リポジトリ。
// 依存レコードと親レコードの削除を単一トランザクションで実行し、
// クラッシュや並行読み取りに対してダングリング参照が観測される
// 時間窓を作らない。外部キーはRESTRICTのため、削除順序を誤ると
// このトランザクション自体が失敗する。
type PostgresCascadeRepo struct {
	db *sql.DB
}

// NewPostgresCascadeRepo はPostgresCascadeRepoを生成する。
func NewPostgresCascadeRepo(db *sql.DB) *PostgresCascadeRepo {
	return &PostgresCascadeRepo{db: db}
}

// DeleteUserCascade はユーザーと全依存レコードを単一トランザクションで削除する。
// 削除順序: フォローエッジ（双方向）→ 本人のブックマーク → 本人のコメント →
// 投稿ストーリーへのブックマーク・コメント → ストーリー → ユーザー。
func (r *PostgresCascadeRepo) DeleteUserCascade(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	// 1. フォローエッジを双方向で削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 OR following_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("フォローエッジのカスケード削除に失敗しました: %w", err)
	}

	// 2. 本人のブックマークを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("ブックマークのカスケード削除に失敗しました: %w", err)
	}

	// 3. 本人のコメントを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("コメントのカスケード削除に失敗しました: %w", err)
	}

	// 4. 投稿ストーリーに付いたブックマーク・コメントを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE story_id IN (SELECT id FROM stories WHERE author_id = $1)`, userID,
	); err != nil {
		return fmt.Errorf("投稿ストーリーのブックマークのカスケード削除に失敗しました: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE story_id IN (SELECT id FROM stories WHERE author_id = $1)`, userID,
	); err != nil {
		return fmt.Errorf("投稿ストーリーのコメントのカスケード削除に失敗しました: %w", err)
	}

	// 5. ストーリーを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM stories WHERE author_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("ストーリーのカスケード削除に失敗しました: %w", err)
	}

	// 6. ユーザー本体を削除
	result, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		// 依存レコードが残ったままのRESTRICT違反は削除順序の欠陥であり、
		// ユーザー起因のエラーではない。
		if pqErrorCode(err) == pqForeignKeyViolation {
			return model.NewConsistencyError(
				fmt.Sprintf("ユーザー %s に依存レコードが残存しています", userID))
		}
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewUserNotFoundError(userID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// DeleteStoryCascade はストーリーと全依存レコードを単一トランザクションで削除する。
// 削除順序: ブックマークエッジ → コメント → ストーリー。
func (r *PostgresCascadeRepo) DeleteStoryCascade(ctx context.Context, storyID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	// 1. ブックマークエッジを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE story_id = $1`, storyID,
	); err != nil {
		return fmt.Errorf("ブックマークのカスケード削除に失敗しました: %w", err)
	}

	// 2. コメントを削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE story_id = $1`, storyID,
	); err != nil {
		return fmt.Errorf("コメントのカスケード削除に失敗しました: %w", err)
	}

	// 3. ストーリー本体を削除
	result, err := tx.ExecContext(ctx,
		`DELETE FROM stories WHERE id = $1`, storyID)
	if err != nil {
		if pqErrorCode(err) == pqForeignKeyViolation {
			return model.NewConsistencyError(
				fmt.Sprintf("ストーリー %s に依存レコードが残存しています", storyID))
		}
		return fmt.Errorf("ストーリーの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewStoryNotFoundError(storyID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ CascadeRepository = (*PostgresCascadeRepo)(nil)
