package repository

import (
	"errors"

	"github.com/lib/pq"

	"github.com/yarnia/yarnia/internal/model"
)

// PostgreSQLのエラーコード（SQLSTATE）
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// pqErrorCode はエラーからPostgreSQLのSQLSTATEコードを取り出す。
// pq.Error以外のエラーには空文字列を返す。
func pqErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// pqConstraintName はエラーから違反した制約名を取り出す。
// 外部キー違反でどの端点が不在だったかを判別するために使用する。
func pqConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// classifyFollowInsertError はフォローエッジINSERTの制約違反をAPIErrorに分類する。
// 複合主キー違反→DUPLICATE_FOLLOW、CHECK違反→SELF_FOLLOW、
// 外部キー違反→不在だった端点のUSER_NOT_FOUND。分類できないエラーはnilを返し、
// 呼び出し側でラップして伝播させる。
func classifyFollowInsertError(err error, followerID, followingID string) error {
	switch pqErrorCode(err) {
	case pqUniqueViolation:
		return model.NewDuplicateFollowError()
	case pqCheckViolation:
		return model.NewSelfFollowError()
	case pqForeignKeyViolation:
		if pqConstraintName(err) == "follows_following_fk" {
			return model.NewUserNotFoundError(followingID)
		}
		return model.NewUserNotFoundError(followerID)
	}
	return nil
}

// classifyBookmarkInsertError はブックマークエッジINSERTの制約違反をAPIErrorに分類する。
// UNIQUE違反→DUPLICATE_BOOKMARK、外部キー違反→STORY_NOT_FOUND / USER_NOT_FOUND。
// 分類できないエラーはnilを返す。
func classifyBookmarkInsertError(err error, userID, storyID string) error {
	switch pqErrorCode(err) {
	case pqUniqueViolation:
		return model.NewDuplicateBookmarkError()
	case pqForeignKeyViolation:
		if pqConstraintName(err) == "bookmarks_story_fk" {
			return model.NewStoryNotFoundError(storyID)
		}
		return model.NewUserNotFoundError(userID)
	}
	return nil
}
