package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the full user so authorization needs no user lookup.
type Claims struct {
	jwt.RegisteredClaims
	User models.User `json:"user"`
}

func GenerateToken(user models.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		User: user,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates an HS256 token and returns the user it describes.
func ParseToken(tokenString string, secretKey []byte) (models.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.User{}, fmt.Errorf("%w: token expired", common.ErrInvalidToken)
		}
		return models.User{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.User.ID == "" {
		return models.User{}, common.ErrInvalidToken
	}

	return claims.User, nil
}

// TokenProvider resolves the user from a signed token.
type TokenProvider struct {
	token  string
	secret []byte
}

func NewTokenProvider(token string, secret []byte) *TokenProvider {
	return &TokenProvider{token: token, secret: secret}
}

func (p *TokenProvider) CurrentUser(context.Context) (models.User, error) {
	if p.token == "" {
		return models.User{}, common.ErrorUnauthorized
	}
	return ParseToken(p.token, p.secret)
}
