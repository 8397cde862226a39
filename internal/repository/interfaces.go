// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/yarnia/yarnia/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。メールアドレス重複時はAPIError(EMAIL_TAKEN)を返す。
	Create(ctx context.Context, user *model.User) error

	// List は全ユーザーを取得する（管理者向け）。
	List(ctx context.Context) ([]*model.User, error)
}

// StoryRepository はストーリーデータの永続化インターフェース。
type StoryRepository interface {
	// FindByID は指定IDのストーリーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Story, error)

	// List は全ストーリーを作成日時の降順で取得する。
	List(ctx context.Context) ([]*model.Story, error)

	// ListByAuthorID は指定ユーザーが投稿したストーリー一覧を返す。
	ListByAuthorID(ctx context.Context, authorID string) ([]*model.Story, error)

	// Create はストーリーを作成する。
	Create(ctx context.Context, story *model.Story) error

	// Update はストーリーのタイトル・概要・本文を更新する。
	// 作者は変更できない。見つからない場合はAPIError(STORY_NOT_FOUND)を返す。
	Update(ctx context.Context, story *model.Story) error
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// FindByID は指定IDのコメントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Comment, error)

	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error

	// ListByStoryID はストーリーに付いたコメント一覧を作成日時の昇順で返す。
	ListByStoryID(ctx context.Context, storyID string) ([]*model.Comment, error)

	// ListByUserID は指定ユーザーが投稿したコメント一覧を返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Comment, error)

	// ListAll は全コメントを返す（管理者向け）。
	ListAll(ctx context.Context) ([]*model.Comment, error)

	// DeleteByID は指定IDのコメントを削除する。
	// 見つからない場合はAPIError(COMMENT_NOT_FOUND)を返す。
	DeleteByID(ctx context.Context, id string) error
}

// FollowRepository はフォローエッジの永続化インターフェース。
// 一意性（重複エッジなし）と自己フォロー禁止はストレージ層の制約で
// 原子的に強制され、同一ペアへの並行挿入でも高々1本しか成立しない。
type FollowRepository interface {
	// Create はフォローエッジを挿入する。
	// 自己フォローはAPIError(SELF_FOLLOW)、重複はAPIError(DUPLICATE_FOLLOW)、
	// 端点ユーザー不在はAPIError(USER_NOT_FOUND)を返す。
	Create(ctx context.Context, followerID, followingID string) (*model.Follow, error)

	// Delete はフォローエッジを削除する。
	// エッジが存在しない場合はAPIError(FOLLOW_NOT_FOUND)を返す。
	// 結果の状態（エッジの不在）は存在有無にかかわらず同一。
	Delete(ctx context.Context, followerID, followingID string) error

	// CountFollowers は指定ユーザーをフォローしているエッジ数を返す。
	// エッジを持たないユーザーには0を返す。
	CountFollowers(ctx context.Context, userID string) (int, error)

	// CountFollowing は指定ユーザーがフォローしているエッジ数を返す。
	CountFollowing(ctx context.Context, userID string) (int, error)

	// IsFollowing はフォローエッジの存在を返す。存在しないペアでもエラーにならない。
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)

	// ListFollowers は指定ユーザーのフォロワーの公開プロフィール一覧を返す。
	ListFollowers(ctx context.Context, userID string) ([]model.PublicProfile, error)

	// ListFollowing は指定ユーザーがフォロー中のユーザーの公開プロフィール一覧を返す。
	ListFollowing(ctx context.Context, userID string) ([]model.PublicProfile, error)
}

// BookmarkWithStory はブックマークエッジとストーリー情報を結合した構造体。
type BookmarkWithStory struct {
	model.Bookmark
	StoryTitle   string
	StoryGenre   model.Genre
	AuthorID     string
	StorySummary *string
}

// BookmarkRepository はブックマークエッジの永続化インターフェース。
// (user_id, story_id) の一意性はストレージ層の制約で原子的に強制される。
type BookmarkRepository interface {
	// Create はブックマークエッジをサーバー付与のタイムスタンプ付きで挿入する。
	// 重複はAPIError(DUPLICATE_BOOKMARK)、ストーリー不在はAPIError(STORY_NOT_FOUND)、
	// ユーザー不在はAPIError(USER_NOT_FOUND)を返す。
	Create(ctx context.Context, userID, storyID string) (*model.Bookmark, error)

	// Delete はブックマークエッジを削除する。
	// 存在しない場合はAPIError(BOOKMARK_NOT_FOUND)を返す。
	Delete(ctx context.Context, userID, storyID string) error

	// Exists はブックマークエッジの存在を返す。
	Exists(ctx context.Context, userID, storyID string) (bool, error)

	// ListByUserID はユーザーのブックマーク一覧をストーリー情報付きで返す。
	// 並び順はリポジトリ生成時の設定に従う（既定は新しい順）。
	ListByUserID(ctx context.Context, userID string) ([]BookmarkWithStory, error)
}

// CascadeRepository はエンティティ削除時のカスケード削除インターフェース。
// 依存レコードの削除と親レコードの削除を単一トランザクションで実行し、
// ダングリング参照が外部から観測される時間窓を作らない。
type CascadeRepository interface {
	// DeleteUserCascade はユーザーと全依存レコードを単一トランザクションで削除する。
	// 削除順序: フォローエッジ（双方向）→ 本人のブックマーク → 本人のコメント →
	// 投稿ストーリーへのブックマーク・コメント → ストーリー → ユーザー。
	// ユーザー不在はAPIError(USER_NOT_FOUND)を返す。
	DeleteUserCascade(ctx context.Context, userID string) error

	// DeleteStoryCascade はストーリーと全依存レコードを単一トランザクションで削除する。
	// 削除順序: ブックマークエッジ → コメント → ストーリー。
	// ストーリー不在はAPIError(STORY_NOT_FOUND)を返す。
	DeleteStoryCascade(ctx context.Context, storyID string) error
}
