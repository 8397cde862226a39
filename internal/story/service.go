// Package story はストーリー投稿のドメインロジックを提供する。
package story

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

// ServiceConfig はストーリーサービスの設定。
type ServiceConfig struct {
	// ProbePictureURLs が有効な場合、カバー画像URLの保存前に
	// HEADリクエストで到達確認を行う。
	ProbePictureURLs bool
}

// Service はストーリー管理のサービス層。
// 投稿・更新・削除・一覧取得のビジネスロジックを提供する。
type Service struct {
	storyRepo    repository.StoryRepository
	cascadeRepo  repository.CascadeRepository
	sanitizer    security.ContentSanitizerService
	pictureGuard security.PictureURLGuardService
	config       ServiceConfig
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	storyRepo repository.StoryRepository,
	cascadeRepo repository.CascadeRepository,
	sanitizer security.ContentSanitizerService,
	pictureGuard security.PictureURLGuardService,
	config ServiceConfig,
) *Service {
	return &Service{
		storyRepo:    storyRepo,
		cascadeRepo:  cascadeRepo,
		sanitizer:    sanitizer,
		pictureGuard: pictureGuard,
		config:       config,
	}
}

// StoryInput はストーリーの作成・更新の入力値。
type StoryInput struct {
	Title      string
	Content    string
	Summary    *string
	Genre      string
	PictureURL *string
}

// List は全ストーリーを作成日時の降順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Story, error) {
	stories, err := s.storyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ストーリー一覧の取得に失敗しました: %w", err)
	}
	return stories, nil
}

// Get は指定IDのストーリーを返す。
// 見つからない場合はAPIError(STORY_NOT_FOUND)を返す。
func (s *Service) Get(ctx context.Context, storyID string) (*model.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("ストーリーの取得に失敗しました: %w", err)
	}
	if story == nil {
		return nil, model.NewStoryNotFoundError(storyID)
	}
	return story, nil
}

// Create は新しいストーリーを投稿する。
// 本文はサニタイズされ、ジャンルは定義済み一覧と照合される。
// カバー画像URLが指定された場合は安全性を検証する。
func (s *Service) Create(ctx context.Context, authorID string, input StoryInput) (*model.Story, error) {
	title := s.sanitizer.SanitizePlain(input.Title)
	if title == "" {
		return nil, model.NewValidationError("タイトルは必須です")
	}

	if !model.IsValidGenre(model.Genre(input.Genre)) {
		return nil, model.NewInvalidGenreError(input.Genre)
	}

	content := s.sanitizer.SanitizeStory(input.Content)
	if content == "" {
		return nil, model.NewValidationError("本文は必須です")
	}

	pictureURL, err := s.checkPictureURL(ctx, input.PictureURL)
	if err != nil {
		return nil, err
	}

	story := &model.Story{
		ID:         uuid.New().String(),
		Title:      title,
		Content:    content,
		Summary:    s.sanitizeSummary(input.Summary),
		Genre:      model.Genre(input.Genre),
		AuthorID:   authorID,
		CreatedAt:  time.Now().UTC(),
		PictureURL: pictureURL,
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	slog.Info("story created",
		slog.String("story_id", story.ID),
		slog.String("author_id", authorID),
		slog.String("genre", input.Genre),
	)

	return story, nil
}

// Update はストーリーのタイトル・概要・本文・カバー画像を更新する。
// 作者本人のみ更新でき、作者とジャンルは変更できない。
// 他人のストーリーへの更新はAPIError(FORBIDDEN)を返す。
func (s *Service) Update(ctx context.Context, userID, storyID string, input StoryInput) (*model.Story, error) {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("ストーリーの取得に失敗しました: %w", err)
	}
	if story == nil {
		return nil, model.NewStoryNotFoundError(storyID)
	}
	if story.AuthorID != userID {
		return nil, model.NewForbiddenError()
	}

	title := s.sanitizer.SanitizePlain(input.Title)
	if title == "" {
		return nil, model.NewValidationError("タイトルは必須です")
	}
	content := s.sanitizer.SanitizeStory(input.Content)
	if content == "" {
		return nil, model.NewValidationError("本文は必須です")
	}

	pictureURL, err := s.checkPictureURL(ctx, input.PictureURL)
	if err != nil {
		return nil, err
	}

	story.Title = title
	story.Content = content
	story.Summary = s.sanitizeSummary(input.Summary)
	story.PictureURL = pictureURL

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// Delete はストーリーと全依存レコード（ブックマーク、コメント）を削除する。
// 作者本人または管理者のみ削除できる。
// 依存レコードの削除は単一トランザクションで実行される。
func (s *Service) Delete(ctx context.Context, userID string, isAdmin bool, storyID string) error {
	story, err := s.storyRepo.FindByID(ctx, storyID)
	if err != nil {
		return fmt.Errorf("ストーリーの取得に失敗しました: %w", err)
	}
	if story == nil {
		return model.NewStoryNotFoundError(storyID)
	}
	if story.AuthorID != userID && !isAdmin {
		return model.NewForbiddenError()
	}

	if err := s.cascadeRepo.DeleteStoryCascade(ctx, storyID); err != nil {
		return err
	}

	slog.Info("story deleted",
		slog.String("story_id", storyID),
		slog.String("deleted_by", userID),
		slog.Bool("as_admin", story.AuthorID != userID),
	)

	return nil
}

// sanitizeSummary は概要をサニタイズする。空になった場合はnilを返す。
func (s *Service) sanitizeSummary(summary *string) *string {
	if summary == nil {
		return nil
	}
	cleaned := s.sanitizer.SanitizePlain(*summary)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// checkPictureURL はカバー画像URLの安全性を検証する。
// 静的検証に加え、設定で有効な場合は到達確認も行う。
func (s *Service) checkPictureURL(ctx context.Context, pictureURL *string) (*string, error) {
	if pictureURL == nil || *pictureURL == "" {
		return nil, nil
	}

	if err := s.pictureGuard.ValidateURL(*pictureURL); err != nil {
		return nil, model.NewInvalidPictureURLError(err.Error())
	}

	if s.config.ProbePictureURLs {
		if err := s.pictureGuard.Probe(ctx, *pictureURL); err != nil {
			return nil, model.NewInvalidPictureURLError(err.Error())
		}
	}

	return pictureURL, nil
}
