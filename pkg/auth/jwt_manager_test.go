package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Hour)
	token, expiresAt, err := manager.Generate(42)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if until := time.Until(expiresAt); until <= 0 || until > time.Hour {
		t.Fatalf("expiresAt = %v, want within one hour", expiresAt)
	}

	userID, claims, err := manager.UserID(token)
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if userID != 42 || claims.Subject != "42" {
		t.Fatalf("UserID() = %d (%q), want 42", userID, claims.Subject)
	}

	expiry, err := manager.Expiry(token)
	if err != nil {
		t.Fatalf("Expiry() error = %v", err)
	}
	if !expiry.Equal(expiresAt.Truncate(time.Second)) {
		t.Fatalf("Expiry() = %v, want %v", expiry, expiresAt.Truncate(time.Second))
	}
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager("secret", time.Hour)
	foreign, _, err := NewJWTManager("other", time.Hour).Generate(1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	expired := NewJWTManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.Generate(1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: stale},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := manager.UserID(testCase.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("UserID() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestExtractToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		cookie  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc", want: "abc"},
		{name: "bearer case insensitive", header: "bearer abc", want: "abc"},
		{name: "cookie", cookie: "xyz", want: "xyz"},
		{name: "header wins", header: "Bearer abc", cookie: "xyz", want: "abc"},
		{name: "malformed header falls back", header: "Token abc", cookie: "xyz", want: "xyz"},
		{name: "nothing", wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			if testCase.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: testCase.cookie})
			}

			got, err := ExtractToken(req)
			if testCase.wantErr {
				if !errors.Is(err, ErrMissingToken) {
					t.Fatalf("ExtractToken() error = %v, want ErrMissingToken", err)
				}
				return
			}
			if err != nil || got != testCase.want {
				t.Fatalf("ExtractToken() = %q, %v, want %q", got, err, testCase.want)
			}
		})
	}
}
