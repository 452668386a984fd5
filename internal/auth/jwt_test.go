package auth

import (
	"strings"
	"testing"
	"time"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	j := NewJWT("access-secret", "refresh-secret", "15m", "7d")

	pair, err := j.Issue("user-1", "test@example.com", "member")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	if pair.Token == "" || pair.RefreshToken == "" {
		t.Fatal("Issue() returned empty token")
	}
	if pair.ExpiresIn != 900 {
		t.Errorf("Issue() got ExpiresIn %d, want 900", pair.ExpiresIn)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("Issue() got TokenType %s, want Bearer", pair.TokenType)
	}

	claims, err := j.Verify(pair.Token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Verify() got UserID %s, want user-1", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("Verify() got Email %s, want test@example.com", claims.Email)
	}
	if claims.Role != "member" {
		t.Errorf("Verify() got Role %s, want member", claims.Role)
	}

	// Tokens are signed with distinct secrets, so they must not be
	// interchangeable.
	if _, err := j.Verify(pair.RefreshToken); err == nil {
		t.Error("Verify() accepted a refresh token as an access token")
	}
	if _, err := j.VerifyRefresh(pair.Token); err == nil {
		t.Error("VerifyRefresh() accepted an access token as a refresh token")
	}

	refreshClaims, err := j.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh() failed: %v", err)
	}
	if refreshClaims.UserID != "user-1" {
		t.Errorf("VerifyRefresh() got UserID %s, want user-1", refreshClaims.UserID)
	}
}

func TestJWT_TamperedToken(t *testing.T) {
	j := NewJWT("access-secret", "refresh-secret", "15m", "7d")

	pair, err := j.Issue("user-1", "test@example.com", "member")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	parts := strings.Split(pair.Token, ".")
	tampered := parts[0] + "." + parts[1] + ".invalid-signature"
	if _, err := j.Verify(tampered); err != ErrInvalidToken {
		t.Errorf("Verify() tampered token: got %v, want ErrInvalidToken", err)
	}

	if _, err := j.Verify("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Verify() malformed token: got %v, want ErrInvalidToken", err)
	}

	other := NewJWT("other-secret", "other-refresh", "15m", "7d")
	if _, err := other.Verify(pair.Token); err != ErrInvalidToken {
		t.Errorf("Verify() wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("access-secret", "refresh-secret", "15m", "7d")

	token, err := j.sign("user-1", "expired@example.com", "member", time.Now().Add(-time.Hour), time.Minute, j.secret)
	if err != nil {
		t.Fatalf("sign() failed: %v", err)
	}

	if _, err := j.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"30s", 30},
		{"15m", 900},
		{"1h", 3600},
		{"7d", 604800},
		{"", 900},
		{"junk", 900},
		{"15", 900},
		{"m15", 900},
		{"-5m", 900},
	}

	for _, tt := range tests {
		if got := ParseExpiry(tt.input); got != tt.want {
			t.Errorf("ParseExpiry(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
