// Package model はドメインモデルを定義する。
package model

import "time"

// Comment はストーリーに対するコメントを表す。
// 親ストーリーまたは投稿ユーザーの削除と共にカスケード削除される。
type Comment struct {
	ID        string
	Content   string
	UserID    string
	StoryID   string
	CreatedAt time.Time
}
