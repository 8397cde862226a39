package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/security"
)

// mockCommentRepo はCommentRepositoryのモック実装。
type mockCommentRepo struct {
	findByIDFunc      func(ctx context.Context, id string) (*model.Comment, error)
	createFunc        func(ctx context.Context, comment *model.Comment) error
	listByStoryIDFunc func(ctx context.Context, storyID string) ([]*model.Comment, error)
	listByUserIDFunc  func(ctx context.Context, userID string) ([]*model.Comment, error)
	listAllFunc       func(ctx context.Context) ([]*model.Comment, error)
	deleteByIDFunc    func(ctx context.Context, id string) error
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return m.createFunc(ctx, comment)
}

func (m *mockCommentRepo) ListByStoryID(ctx context.Context, storyID string) ([]*model.Comment, error) {
	return m.listByStoryIDFunc(ctx, storyID)
}

func (m *mockCommentRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Comment, error) {
	return m.listByUserIDFunc(ctx, userID)
}

func (m *mockCommentRepo) ListAll(ctx context.Context) ([]*model.Comment, error) {
	return m.listAllFunc(ctx)
}

func (m *mockCommentRepo) DeleteByID(ctx context.Context, id string) error {
	return m.deleteByIDFunc(ctx, id)
}

func newTestService(repo *mockCommentRepo) *Service {
	return NewService(repo, security.NewContentSanitizer())
}

// TestCreate_Success はコメントの投稿を検証する。
func TestCreate_Success(t *testing.T) {
	var created *model.Comment
	repo := &mockCommentRepo{
		createFunc: func(ctx context.Context, comment *model.Comment) error {
			created = comment
			return nil
		},
	}
	svc := newTestService(repo)

	comment, err := svc.Create(context.Background(), "user-1", "story-1", "続きが気になります")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created == nil {
		t.Fatal("comment was not persisted")
	}
	if comment.ID == "" {
		t.Error("comment ID is not assigned")
	}
	if comment.UserID != "user-1" || comment.StoryID != "story-1" {
		t.Errorf("comment = %+v, want user=user-1 story=story-1", comment)
	}
	if comment.CreatedAt.IsZero() {
		t.Error("CreatedAt is not set")
	}
}

// TestCreate_SanitizesContent は本文からタグが除去されることを検証する。
func TestCreate_SanitizesContent(t *testing.T) {
	repo := &mockCommentRepo{
		createFunc: func(ctx context.Context, comment *model.Comment) error { return nil },
	}
	svc := newTestService(repo)

	comment, err := svc.Create(context.Background(), "user-1", "story-1",
		`感想<script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if comment.Content != "感想" {
		t.Errorf("content = %q, want %q", comment.Content, "感想")
	}
}

// TestCreate_EmptyContent は空本文にVALIDATION_ERRORを返すことを検証する。
func TestCreate_EmptyContent(t *testing.T) {
	repo := &mockCommentRepo{
		createFunc: func(ctx context.Context, comment *model.Comment) error {
			t.Fatal("Create should not be called for empty content")
			return nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), "user-1", "story-1", "<script></script>")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not APIError: %v", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
}

// TestCreate_StoryNotFound はストーリー不在エラーの伝播を検証する。
func TestCreate_StoryNotFound(t *testing.T) {
	repo := &mockCommentRepo{
		createFunc: func(ctx context.Context, comment *model.Comment) error {
			return model.NewStoryNotFoundError(comment.StoryID)
		},
	}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), "user-1", "no-such-story", "感想")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not APIError: %v", err)
	}
	if apiErr.Code != model.ErrCodeStoryNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeStoryNotFound)
	}
}

// TestDelete_Permissions は削除権限の判定を検証する。
func TestDelete_Permissions(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		isAdmin    bool
		wantErr    string
		wantDelete bool
	}{
		{"投稿者本人は削除できる", "user-1", false, "", true},
		{"管理者は削除できる", "admin-1", true, "", true},
		{"第三者は削除できない", "other-user", false, model.ErrCodeForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			repo := &mockCommentRepo{
				findByIDFunc: func(ctx context.Context, id string) (*model.Comment, error) {
					return &model.Comment{ID: id, UserID: "user-1", StoryID: "story-1"}, nil
				},
				deleteByIDFunc: func(ctx context.Context, id string) error {
					deleted = true
					return nil
				},
			}
			svc := newTestService(repo)

			err := svc.Delete(context.Background(), tt.userID, tt.isAdmin, "comment-1")

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Delete failed: %v", err)
				}
			} else {
				var apiErr *model.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error is not APIError: %v", err)
				}
				if apiErr.Code != tt.wantErr {
					t.Errorf("code = %q, want %q", apiErr.Code, tt.wantErr)
				}
			}
			if deleted != tt.wantDelete {
				t.Errorf("deleted = %v, want %v", deleted, tt.wantDelete)
			}
		})
	}
}

// TestDelete_NotFound は存在しないコメントの削除がCOMMENT_NOT_FOUNDを返すことを検証する。
func TestDelete_NotFound(t *testing.T) {
	repo := &mockCommentRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Comment, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "user-1", false, "no-such-comment")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not APIError: %v", err)
	}
	if apiErr.Code != model.ErrCodeCommentNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeCommentNotFound)
	}
}

// TestListByStory はストーリーのコメント一覧取得を検証する。
func TestListByStory(t *testing.T) {
	repo := &mockCommentRepo{
		listByStoryIDFunc: func(ctx context.Context, storyID string) ([]*model.Comment, error) {
			return []*model.Comment{
				{ID: "c-1", StoryID: storyID, Content: "最初の感想"},
				{ID: "c-2", StoryID: storyID, Content: "次の感想"},
			}, nil
		},
	}
	svc := newTestService(repo)

	comments, err := svc.ListByStory(context.Background(), "story-1")
	if err != nil {
		t.Fatalf("ListByStory failed: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("len(comments) = %d, want 2", len(comments))
	}
}
