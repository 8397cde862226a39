package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yarnia/yarnia/internal/token"
)

// mockVerifier はTokenVerifierのモック実装。
type mockVerifier struct {
	verifyFunc func(tokenString string) (*token.Identity, error)
}

func (m *mockVerifier) Verify(tokenString string) (*token.Identity, error) {
	return m.verifyFunc(tokenString)
}

// TestAuthMiddleware_MissingToken はトークン未提示時に401とTOKEN_MISSINGを返すことを検証する。
func TestAuthMiddleware_MissingToken(t *testing.T) {
	verifier := &mockVerifier{
		verifyFunc: func(tokenString string) (*token.Identity, error) {
			t.Fatal("Verify should not be called without a token")
			return nil, nil
		},
	}

	mw := NewAuthMiddleware(verifier)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != "TOKEN_MISSING" {
		t.Errorf("code = %q, want %q", body.Code, "TOKEN_MISSING")
	}
}

// TestAuthMiddleware_MalformedHeader はBearer形式でないヘッダーを未提示として扱うことを検証する。
func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	verifier := &mockVerifier{
		verifyFunc: func(tokenString string) (*token.Identity, error) {
			t.Fatal("Verify should not be called")
			return nil, nil
		},
	}

	mw := NewAuthMiddleware(verifier)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != "TOKEN_MISSING" {
		t.Errorf("code = %q, want %q", body.Code, "TOKEN_MISSING")
	}
}

// TestAuthMiddleware_InvalidToken は無効なトークンに401とTOKEN_INVALIDを返すことを検証する。
// 未提示とは別のエラーコードであることを確認する。
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	verifier := &mockVerifier{
		verifyFunc: func(tokenString string) (*token.Identity, error) {
			return nil, errors.New("signature mismatch")
		},
	}

	mw := NewAuthMiddleware(verifier)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != "TOKEN_INVALID" {
		t.Errorf("code = %q, want %q", body.Code, "TOKEN_INVALID")
	}
}

// TestAuthMiddleware_ValidToken は有効なトークンでコンテキストに認証情報が入ることを検証する。
func TestAuthMiddleware_ValidToken(t *testing.T) {
	verifier := &mockVerifier{
		verifyFunc: func(tokenString string) (*token.Identity, error) {
			if tokenString != "valid-token" {
				t.Errorf("token = %q, want %q", tokenString, "valid-token")
			}
			return &token.Identity{UserID: "user-1", IsAdmin: true}, nil
		},
	}

	var gotIdentity *token.Identity
	mw := NewAuthMiddleware(verifier)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := IdentityFromContext(r.Context())
		if err != nil {
			t.Fatalf("IdentityFromContext failed: %v", err)
		}
		gotIdentity = identity
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotIdentity == nil || gotIdentity.UserID != "user-1" || !gotIdentity.IsAdmin {
		t.Errorf("identity = %+v, want UserID=user-1 IsAdmin=true", gotIdentity)
	}
}

// TestRequireAdminMiddleware_NonAdmin は非管理者に403とFORBIDDENを返すことを検証する。
func TestRequireAdminMiddleware_NonAdmin(t *testing.T) {
	mw := NewRequireAdminMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx := ContextWithIdentity(req.Context(), &token.Identity{UserID: "user-1", IsAdmin: false})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Code != "FORBIDDEN" {
		t.Errorf("code = %q, want %q", body.Code, "FORBIDDEN")
	}
}

// TestRequireAdminMiddleware_Admin は管理者がそのまま通過することを検証する。
func TestRequireAdminMiddleware_Admin(t *testing.T) {
	mw := NewRequireAdminMiddleware()
	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx := ContextWithIdentity(req.Context(), &token.Identity{UserID: "admin-1", IsAdmin: true})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if !called {
		t.Fatal("next handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// TestRequireAdminMiddleware_NoIdentity は認証情報なしに401を返すことを検証する。
func TestRequireAdminMiddleware_NoIdentity(t *testing.T) {
	mw := NewRequireAdminMiddleware()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
