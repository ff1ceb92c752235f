package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionIDFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bare id", "abc-123", "abc-123"},
		{"bearer prefix", "Bearer abc-123", "abc-123"},
		{"bearer with padding", "  Bearer abc-123  ", "abc-123"},
		{"empty", "", ""},
		{"prefix only", "Bearer ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SessionIDFromHeader(tt.header); got != tt.want {
				t.Fatalf("SessionIDFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestHashAndValidatePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if !ValidatePassword(hash, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if ValidatePassword(hash, "wrong-pass") {
		t.Fatal("wrong password accepted")
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	parsed, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["email"] != "user@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}
	if claims["type"] != "access" {
		t.Fatalf("type claim = %v", claims["type"])
	}
}

func TestRefreshTokenCarriesSession(t *testing.T) {
	token, err := GenerateRefreshToken("user@example.com", "session-abc")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	parsed, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sessionId"] != "session-abc" {
		t.Fatalf("sessionId claim = %v", claims["sessionId"])
	}
	if claims["type"] != "refresh" {
		t.Fatalf("type claim = %v", claims["type"])
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestQueryContextTimeouts(t *testing.T) {
	ctx, cancel := GetFastQueryContext(nil)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	remaining := time.Until(deadline)
	if remaining <= 0 || remaining > FastQueryTimeout {
		t.Fatalf("deadline out of range: %v", remaining)
	}
}
