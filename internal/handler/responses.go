package handler

import (
	"time"

	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/repository"
)

// userResponse はユーザー情報のAPIレスポンス（本人・管理者向け）。
type userResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio,omitempty"`
	IsAdmin    bool      `json:"is_admin"`
	JoinedOn   time.Time `json:"joined_on"`
	ProfilePic *string   `json:"profile_pic,omitempty"`
}

// publicProfileResponse は公開プロフィールのAPIレスポンス。
// メールアドレスなどの非公開項目は含まない。
type publicProfileResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Bio        string  `json:"bio,omitempty"`
	ProfilePic *string `json:"profile_pic,omitempty"`
}

// storyResponse はストーリーのAPIレスポンス。
type storyResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Summary    *string   `json:"summary,omitempty"`
	Genre      string    `json:"genre"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	PictureURL *string   `json:"picture_url,omitempty"`
}

// commentResponse はコメントのAPIレスポンス。
type commentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	StoryID   string    `json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
}

// followResponse はフォローエッジのAPIレスポンス。
type followResponse struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// createdBookmarkResponse はブックマーク作成直後のAPIレスポンス。
type createdBookmarkResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoryID   string    `json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
}

// bookmarkResponse はブックマークエッジのAPIレスポンス（ストーリー情報付き）。
type bookmarkResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StoryID      string    `json:"story_id"`
	CreatedAt    time.Time `json:"created_at"`
	StoryTitle   string    `json:"story_title"`
	StoryGenre   string    `json:"story_genre"`
	AuthorID     string    `json:"author_id"`
	StorySummary *string   `json:"story_summary,omitempty"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Bio:        u.Bio,
		IsAdmin:    u.IsAdmin,
		JoinedOn:   u.JoinedOn,
		ProfilePic: u.ProfilePic,
	}
}

func toPublicProfileResponse(p model.PublicProfile) publicProfileResponse {
	return publicProfileResponse{
		ID:         p.ID,
		Username:   p.Username,
		Bio:        p.Bio,
		ProfilePic: p.ProfilePic,
	}
}

func toStoryResponse(s *model.Story) storyResponse {
	return storyResponse{
		ID:         s.ID,
		Title:      s.Title,
		Content:    s.Content,
		Summary:    s.Summary,
		Genre:      string(s.Genre),
		AuthorID:   s.AuthorID,
		CreatedAt:  s.CreatedAt,
		PictureURL: s.PictureURL,
	}
}

func toStoryResponses(stories []*model.Story) []storyResponse {
	results := make([]storyResponse, len(stories))
	for i, s := range stories {
		results[i] = toStoryResponse(s)
	}
	return results
}

func toCommentResponse(c *model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		StoryID:   c.StoryID,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentResponses(comments []*model.Comment) []commentResponse {
	results := make([]commentResponse, len(comments))
	for i, c := range comments {
		results[i] = toCommentResponse(c)
	}
	return results
}

func toPublicProfileResponses(profiles []model.PublicProfile) []publicProfileResponse {
	results := make([]publicProfileResponse, len(profiles))
	for i, p := range profiles {
		results[i] = toPublicProfileResponse(p)
	}
	return results
}

func toFollowResponse(f *model.Follow) followResponse {
	return followResponse{
		FollowerID:  f.FollowerID,
		FollowingID: f.FollowingID,
		CreatedAt:   f.CreatedAt,
	}
}

func toCreatedBookmarkResponse(b *model.Bookmark) createdBookmarkResponse {
	return createdBookmarkResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		StoryID:   b.StoryID,
		CreatedAt: b.CreatedAt,
	}
}

func toBookmarkResponses(bookmarks []repository.BookmarkWithStory) []bookmarkResponse {
	results := make([]bookmarkResponse, len(bookmarks))
	for i, b := range bookmarks {
		results[i] = bookmarkResponse{
			ID:           b.ID,
			UserID:       b.UserID,
			StoryID:      b.StoryID,
			CreatedAt:    b.CreatedAt,
			StoryTitle:   b.StoryTitle,
			StoryGenre:   string(b.StoryGenre),
			AuthorID:     b.AuthorID,
			StorySummary: b.StorySummary,
		}
	}
	return results
}
