// Package comment はコメント管理のドメインロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/repository"
	"github.com/yarnia/yarnia/internal/security"
)

// Service はコメント管理のサービス層。
type Service struct {
	commentRepo repository.CommentRepository
	sanitizer   security.ContentSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	commentRepo repository.CommentRepository,
	sanitizer security.ContentSanitizerService,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		sanitizer:   sanitizer,
	}
}

// ListByStory はストーリーに付いたコメント一覧を作成日時の昇順で返す。
func (s *Service) ListByStory(ctx context.Context, storyID string) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByStoryID(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	return comments, nil
}

// ListByUser は指定ユーザーが投稿したコメント一覧を返す。
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	return comments, nil
}

// ListAll は全コメントを返す（管理者向け）。
func (s *Service) ListAll(ctx context.Context) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	return comments, nil
}

// Create はストーリーにコメントを投稿する。
// 本文はサニタイズされる。ストーリー不在はAPIError(STORY_NOT_FOUND)を返す。
func (s *Service) Create(ctx context.Context, userID, storyID, content string) (*model.Comment, error) {
	cleaned := s.sanitizer.SanitizePlain(content)
	if cleaned == "" {
		return nil, model.NewValidationError("コメント本文は必須です")
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		Content:   cleaned,
		UserID:    userID,
		StoryID:   storyID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	slog.Info("comment created",
		slog.String("comment_id", comment.ID),
		slog.String("story_id", storyID),
		slog.String("user_id", userID),
	)

	return comment, nil
}

// Delete はコメントを削除する。
// 投稿者本人または管理者のみ削除できる。
// コメント不在はAPIError(COMMENT_NOT_FOUND)を返す。
func (s *Service) Delete(ctx context.Context, userID string, isAdmin bool, commentID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("コメントの取得に失敗しました: %w", err)
	}
	if comment == nil {
		return model.NewCommentNotFoundError(commentID)
	}
	if comment.UserID != userID && !isAdmin {
		return model.NewForbiddenError()
	}

	return s.commentRepo.DeleteByID(ctx, commentID)
}
