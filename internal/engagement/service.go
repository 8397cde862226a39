// Package engagement はフォローとブックマークのドメインロジックを提供する。
//
// フォローエッジとブックマークエッジの一意性はストレージ層の制約で
// 原子的に強制されるため、このサービス層では存在チェックを行わない。
// 同一ペアに対する並行した作成要求は、ちょうど1件だけが成功する。
package engagement

import (
	"context"
	"fmt"

	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/repository"
)

// EngagementCounts はユーザーのフォロー関連の集計値。
// 読み取り時点のスナップショットであり、直後に変わりうる。
type EngagementCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// Service はフォロー・ブックマーク管理のサービス層。
type Service struct {
	followRepo   repository.FollowRepository
	bookmarkRepo repository.BookmarkRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	followRepo repository.FollowRepository,
	bookmarkRepo repository.BookmarkRepository,
) *Service {
	return &Service{
		followRepo:   followRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

// Follow はfollowerIDからfollowingIDへのフォローエッジを作成する。
// 自己フォローは挿入前に拒否する（ストレージ層の制約でも二重に防止される）。
// 既にフォロー済みの場合はAPIError(DUPLICATE_FOLLOW)を返す。
func (s *Service) Follow(ctx context.Context, followerID, followingID string) (*model.Follow, error) {
	if followerID == followingID {
		return nil, model.NewSelfFollowError()
	}

	follow, err := s.followRepo.Create(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	return follow, nil
}

// Unfollow はフォローエッジを削除する。
// エッジが存在しない場合はAPIError(FOLLOW_NOT_FOUND)を返す。
// フォローとフォロー解除は独立した2つの操作であり、トグルではない。
func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	return s.followRepo.Delete(ctx, followerID, followingID)
}

// Counts はユーザーのフォロワー数とフォロー中数を返す。
// 2つの集計は別々の読み取りであり、全体としての原子性は保証しない。
func (s *Service) Counts(ctx context.Context, userID string) (*EngagementCounts, error) {
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("フォロワー数の取得に失敗しました: %w", err)
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("フォロー中数の取得に失敗しました: %w", err)
	}
	return &EngagementCounts{Followers: followers, Following: following}, nil
}

// CountFollowers はユーザーをフォローしているエッジ数を返す。
// エッジを持たないユーザーには0を返す。
func (s *Service) CountFollowers(ctx context.Context, userID string) (int, error) {
	return s.followRepo.CountFollowers(ctx, userID)
}

// CountFollowing はユーザーがフォローしているエッジ数を返す。
func (s *Service) CountFollowing(ctx context.Context, userID string) (int, error) {
	return s.followRepo.CountFollowing(ctx, userID)
}

// IsFollowing はフォローエッジの存在を返す。
// 存在しないペアの照会はエラーではなくfalseを返す。
func (s *Service) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followingID)
}

// ListFollowers はユーザーのフォロワーの公開プロフィール一覧を返す。
func (s *Service) ListFollowers(ctx context.Context, userID string) ([]model.PublicProfile, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

// ListFollowing はユーザーがフォロー中のユーザーの公開プロフィール一覧を返す。
func (s *Service) ListFollowing(ctx context.Context, userID string) ([]model.PublicProfile, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

// BookmarkStory はユーザーのブックマークエッジを作成する。
// タイムスタンプはサーバー側で付与される。
// 既にブックマーク済みの場合はAPIError(DUPLICATE_BOOKMARK)、
// ストーリーが存在しない場合はAPIError(STORY_NOT_FOUND)を返す。
func (s *Service) BookmarkStory(ctx context.Context, userID, storyID string) (*model.Bookmark, error) {
	return s.bookmarkRepo.Create(ctx, userID, storyID)
}

// RemoveBookmark はブックマークエッジを削除する。
// エッジが存在しない場合はAPIError(BOOKMARK_NOT_FOUND)を返す。
func (s *Service) RemoveBookmark(ctx context.Context, userID, storyID string) error {
	return s.bookmarkRepo.Delete(ctx, userID, storyID)
}

// IsBookmarked はブックマークエッジの存在を返す。
func (s *Service) IsBookmarked(ctx context.Context, userID, storyID string) (bool, error) {
	return s.bookmarkRepo.Exists(ctx, userID, storyID)
}

// ListBookmarks はユーザーのブックマーク一覧をストーリー情報付きで返す。
// 並び順はストレージ層の設定に従う（既定は新しい順）。
func (s *Service) ListBookmarks(ctx context.Context, userID string) ([]repository.BookmarkWithStory, error) {
	bookmarks, err := s.bookmarkRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ブックマーク一覧の取得に失敗しました: %w", err)
	}
	return bookmarks, nil
}
