// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/repository"
)

// Service はユーザー管理のサービス層。
// プロフィール参照と管理者による退会処理のビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	storyRepo   repository.StoryRepository
	cascadeRepo repository.CascadeRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	storyRepo repository.StoryRepository,
	cascadeRepo repository.CascadeRepository,
) *Service {
	return &Service{
		userRepo:    userRepo,
		storyRepo:   storyRepo,
		cascadeRepo: cascadeRepo,
	}
}

// Profile はユーザーの公開プロフィールと投稿ストーリー一覧。
type Profile struct {
	User    model.PublicProfile
	Stories []*model.Story
}

// GetProfile はユーザーの公開プロフィールを投稿ストーリー付きで返す。
// メールアドレスやパスワードハッシュなどの非公開項目は含まない。
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return nil, model.NewUserNotFoundError(userID)
	}

	stories, err := s.storyRepo.ListByAuthorID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("投稿ストーリーの取得に失敗しました: %w", err)
	}

	return &Profile{
		User:    u.Public(),
		Stories: stories,
	}, nil
}

// List は全ユーザーを返す（管理者向け）。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// Delete はユーザーと全依存レコードを削除する（管理者向け）。
// フォローエッジ、ブックマーク、コメント、投稿ストーリーとその依存レコードが
// 単一トランザクションで削除され、ダングリング参照は外部から観測されない。
// ユーザー不在はAPIError(USER_NOT_FOUND)を返す。
func (s *Service) Delete(ctx context.Context, userID string) error {
	slog.Info("ユーザー削除処理を開始します",
		slog.String("user_id", userID),
	)

	if err := s.cascadeRepo.DeleteUserCascade(ctx, userID); err != nil {
		return err
	}

	slog.Info("ユーザー削除処理が完了しました",
		slog.String("user_id", userID),
	)

	return nil
}
