// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashにはbcryptでハッシュ化された値のみを保持し、平文は一切保存しない。
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Bio          string
	IsAdmin      bool
	JoinedOn     time.Time
	ProfilePic   *string
}

// PublicProfile はAPI応答で公開してよいユーザー情報の部分集合を表す。
// メールアドレス・パスワードハッシュ・管理者フラグは含めない。
type PublicProfile struct {
	ID         string
	Username   string
	Bio        string
	ProfilePic *string
}

// Public はユーザーの公開プロフィールを返す。
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:         u.ID,
		Username:   u.Username,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
	}
}
