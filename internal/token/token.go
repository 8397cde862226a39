// Package token は署名付き認証トークンの発行と検証を提供する。
//
// トークンはHS256で署名されたJWTで、ユーザーIDと管理者フラグを
// クレームとして含む。有効期限は発行時に固定され、失効リストは
// 保持しない（期限切れのみが唯一の無効化手段となる既知の制約）。
// 管理者フラグは発行時点の値であり、権限変更は再ログインまで
// 反映されない。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL はトークンの既定の有効期間。
const DefaultTTL = time.Hour

// ErrInvalidToken は署名不正・期限切れ・形式不正のトークンを示す。
// トークン未提示とは呼び出し側で区別すること。
var ErrInvalidToken = errors.New("トークンが無効です")

// Identity は検証済みトークンから得られる認証済み主体を表す。
type Identity struct {
	UserID  string
	IsAdmin bool
}

// Claims はJWTクレーム構造。標準クレームに加えてユーザーIDと
// 管理者フラグを含む。
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// Issuer はトークンの発行と検証を行う。ステートレスであり、
// 複数ゴルーチンから同時に使用できる。
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer はIssuerを生成する。ttlが0の場合はDefaultTTLを使用する。
// 負のttlはそのまま採用され、発行済みの時点で期限切れのトークンになる。
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue はユーザーIDと管理者フラグを含む署名付きトークンを発行する。
func (i *Issuer) Issue(userID string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify はトークンを検証し、認証済み主体を返す。
// 署名不正・期限切れ・署名方式の不一致はいずれもErrInvalidTokenを返す。
func (i *Issuer) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}
