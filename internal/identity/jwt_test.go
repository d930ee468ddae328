package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var alice = models.User{
	ID:         "u1",
	Name:       "Alice",
	UserRoles:  []models.UserRole{{ID: "r1", Name: "Superuser", Authorities: []string{"ALL"}}},
	UserGroups: []models.NamedRef{{ID: "g1", Name: "Trainers"}},
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(alice, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if got.ID != "u1" || got.Name != "Alice" || len(got.UserRoles) != 1 || got.UserRoles[0].Authorities[0] != "ALL" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.InGroup("g1") {
		t.Fatalf("groups lost: %+v", got.UserGroups)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(alice, []byte("secret"), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(alice, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, []byte("wrong-secret")); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not.a.jwt", []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{User: alice}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseToken(tok, []byte("k")); err == nil {
		t.Fatalf("expected HS512 token to be rejected")
	}
}

func TestParseToken_RequiresUser(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(models.User{}, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := ParseToken(tok, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(alice, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := NewTokenProvider(tok, []byte("k")).CurrentUser(context.Background())
	if err != nil || got.ID != "u1" {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}

	if _, err := NewTokenProvider("", []byte("k")).CurrentUser(context.Background()); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized, got %v", err)
	}
}
