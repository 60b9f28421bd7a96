package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/todoweb/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(123, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != 123 {
		t.Fatalf("userID mismatch: got %d want %d", gotUserID, 123)
	}
}

func TestGenerateToken_SubjectAndExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	tok, err := GenerateToken(7, secret, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) { return secret, nil }); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.Subject != "7" {
		t.Fatalf("subject: got %q want %q", claims.Subject, "7")
	}
	left := time.Until(claims.ExpiresAt.Time)
	if left < 23*time.Hour || left > 24*time.Hour {
		t.Fatalf("unexpected expiry window: %v", left)
	}
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(1, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, secret)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("wrong-secret"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetUserIDFromToken("not.a.jwt", []byte("k"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_SubjectProblems(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	cases := map[string]jwt.RegisteredClaims{
		"missing subject":     {ExpiresAt: exp},
		"non-numeric subject": {Subject: "alice", ExpiresAt: exp},
		"missing expiry":      {Subject: "1"},
	}

	for name, claims := range cases {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		if err != nil {
			t.Fatalf("%s: sign error: %v", name, err)
		}
		if _, err := GetUserIDFromToken(tok, secret); err != common.ErrInvalidToken {
			t.Fatalf("%s: expected common.ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestGetUserIDFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	claims := jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := GetUserIDFromToken(tok, secret); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
