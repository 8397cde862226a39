// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, engagement, content, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeTokenMissing       = "TOKEN_MISSING"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeSelfFollow         = "SELF_FOLLOW"
	ErrCodeDuplicateFollow    = "DUPLICATE_FOLLOW"
	ErrCodeDuplicateBookmark  = "DUPLICATE_BOOKMARK"
	ErrCodeFollowNotFound     = "FOLLOW_NOT_FOUND"
	ErrCodeBookmarkNotFound   = "BOOKMARK_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeStoryNotFound      = "STORY_NOT_FOUND"
	ErrCodeCommentNotFound    = "COMMENT_NOT_FOUND"
	ErrCodeInvalidGenre       = "INVALID_GENRE"
	ErrCodeInvalidPictureURL  = "INVALID_PICTURE_URL"
	ErrCodeConsistency        = "CONSISTENCY_ERROR"
	ErrCodeValidation         = "VALIDATION_ERROR"
)

// NewValidationError は入力値の検証エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("入力内容に誤りがあります: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewTokenMissingError はトークン未提示エラーを生成する。
// トークンが無効な場合（NewTokenInvalidError）とは区別される。
func NewTokenMissingError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenMissing,
		Message:  "認証トークンが提示されていません。",
		Category: "auth",
		Action:   "Authorizationヘッダーにトークンを設定してください。",
	}
}

// NewTokenInvalidError はトークン無効（署名不正・期限切れ）エラーを生成する。
func NewTokenInvalidError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenInvalid,
		Message:  "認証トークンが無効または期限切れです。",
		Category: "auth",
		Action:   "再度ログインしてください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
// 認証は通っているが管理者権限がない場合に使用する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作には管理者権限が必要です。",
		Category: "auth",
		Action:   "管理者アカウントでログインしてください。",
	}
}

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// ユーザー不在とパスワード不一致は意図的に区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に使用されています。",
		Category: "validation",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewSelfFollowError は自己フォローエラーを生成する。
func NewSelfFollowError() *APIError {
	return &APIError{
		Code:     ErrCodeSelfFollow,
		Message:  "自分自身をフォローすることはできません。",
		Category: "engagement",
		Action:   "他のユーザーを指定してください。",
	}
}

// NewDuplicateFollowError はフォロー重複エラーを生成する。
func NewDuplicateFollowError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateFollow,
		Message:  "このユーザーは既にフォローしています。",
		Category: "engagement",
		Action:   "フォロー一覧から該当ユーザーを確認してください。",
	}
}

// NewDuplicateBookmarkError はブックマーク重複エラーを生成する。
func NewDuplicateBookmarkError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateBookmark,
		Message:  "このストーリーは既にブックマークしています。",
		Category: "engagement",
		Action:   "ブックマーク一覧から該当ストーリーを確認してください。",
	}
}

// NewFollowNotFoundError はフォロー関係が存在しない場合のエラーを生成する。
// 解除操作は冪等ではなく、存在しないエッジの解除は明示的に報告する。
func NewFollowNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeFollowNotFound,
		Message:  "フォロー関係が見つかりません。",
		Category: "engagement",
		Action:   "フォロー状態を確認してください。",
	}
}

// NewBookmarkNotFoundError はブックマークが存在しない場合のエラーを生成する。
func NewBookmarkNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeBookmarkNotFound,
		Message:  "ブックマークが見つかりません。",
		Category: "engagement",
		Action:   "ブックマーク状態を確認してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("指定されたユーザーが見つかりません: %s", userID),
		Category: "auth",
		Action:   "ユーザーIDを確認してください。",
	}
}

// NewStoryNotFoundError はストーリーが見つからない場合のエラーを生成する。
func NewStoryNotFoundError(storyID string) *APIError {
	return &APIError{
		Code:     ErrCodeStoryNotFound,
		Message:  fmt.Sprintf("指定されたストーリーが見つかりません: %s", storyID),
		Category: "content",
		Action:   "ストーリーIDを確認してください。",
	}
}

// NewCommentNotFoundError はコメントが見つからない場合のエラーを生成する。
func NewCommentNotFoundError(commentID string) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("指定されたコメントが見つかりません: %s", commentID),
		Category: "content",
		Action:   "コメントIDを確認してください。",
	}
}

// NewInvalidGenreError は無効なジャンルエラーを生成する。
func NewInvalidGenreError(genre string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidGenre,
		Message:  fmt.Sprintf("無効なジャンルです: %s", genre),
		Category: "validation",
		Action:   "定義済みのジャンルから選択してください。",
	}
}

// NewInvalidPictureURLError は画像URLが安全でない場合のエラーを生成する。
func NewInvalidPictureURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPictureURL,
		Message:  fmt.Sprintf("無効な画像URLです: %s", reason),
		Category: "validation",
		Action:   "公開されているhttpsの画像URLを指定してください。",
	}
}

// NewConsistencyError は整合性違反エラーを生成する。
// カスケード削除が正しく実装されていれば到達しない。発生は常に実装または
// ストレージ層の欠陥であり、ユーザー起因のエラーではない。
func NewConsistencyError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeConsistency,
		Message:  fmt.Sprintf("データ整合性違反を検出しました: %s", detail),
		Category: "system",
		Action:   "管理者に連絡してください。",
	}
}
