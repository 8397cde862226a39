// Package auth はユーザー登録、ログイン、トークン発行を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yarnia/yarnia/internal/model"
	"github.com/yarnia/yarnia/internal/repository"
	"github.com/yarnia/yarnia/internal/security"
)

// passwordMinLength はパスワードの最小文字数。
const passwordMinLength = 8

// TokenIssuer はトークンの発行に必要なインターフェース。
// token.Issuerの部分集合として定義する。
type TokenIssuer interface {
	Issue(userID string, isAdmin bool) (string, error)
}

// AuthResult は認証成功時のトークンとユーザー情報。
type AuthResult struct {
	Token string
	User  *model.User
}

// RegisterInput はユーザー登録の入力値。
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Bio      string
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int // bcryptのコストパラメータ
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	issuer    TokenIssuer
	sanitizer security.ContentSanitizerService
	config    ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	issuer TokenIssuer,
	sanitizer security.ContentSanitizerService,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:  userRepo,
		issuer:    issuer,
		sanitizer: sanitizer,
		config:    config,
	}
}

// Register は新規ユーザーを登録し、トークンを発行する。
// メールアドレス重複時はAPIError(EMAIL_TAKEN)を返す。
// 重複判定はストレージ層の一意制約で原子的に行われる。
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := s.sanitizer.SanitizePlain(input.Username)
	bio := s.sanitizer.SanitizePlain(input.Bio)

	if err := validateRegisterInput(username, input.Email, input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Bio:          bio,
		IsAdmin:      false,
		JoinedOn:     time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenString, err := s.issuer.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("new user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{Token: tokenString, User: user}, nil
}

// Login はメールアドレスとパスワードを検証し、トークンを発行する。
// ユーザー不在とパスワード不一致は区別せず、どちらも
// APIError(INVALID_CREDENTIALS)を返す。
// トークンの権限クレームはログイン時点の権限を反映する。
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	tokenString, err := s.issuer.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))

	return &AuthResult{Token: tokenString, User: user}, nil
}

// CurrentUser はトークンに紐づく現在のユーザーを取得する。
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(userID)
	}
	return user, nil
}

// validateRegisterInput は登録入力値を検証する。
func validateRegisterInput(username, email, password string) error {
	if username == "" {
		return model.NewValidationError("ユーザー名は必須です")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.NewValidationError("メールアドレスの形式が正しくありません")
	}
	if utf8.RuneCountInString(password) < passwordMinLength {
		return model.NewValidationError(
			fmt.Sprintf("パスワードは%d文字以上で指定してください", passwordMinLength))
	}
	return nil
}
