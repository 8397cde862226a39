// Package model はドメインモデルを定義する。
package model

import "time"

// Follow はユーザー間のフォロー関係（有向エッジ）を表す。
// (FollowerID, FollowingID) の組は一意であり、自己フォローは存在しない。
// 両端のユーザーはエッジを所有せず、エッジ側が外部キーとして参照する。
type Follow struct {
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}

// Bookmark はユーザーとストーリーのブックマーク関係を表す。
// (UserID, StoryID) の組は一意。CreatedAtはサーバー側で付与する。
type Bookmark struct {
	ID        string
	UserID    string
	StoryID   string
	CreatedAt time.Time
}
