// Package identity resolves the acting user.
package identity

import (
	"context"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
)

type Provider interface {
	CurrentUser(ctx context.Context) (models.User, error)
}

type userKey struct{}

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}

// ContextProvider reads the user stored by WithUser and falls back to
// Fallback when the context carries none.
type ContextProvider struct {
	Fallback Provider
}

func (p ContextProvider) CurrentUser(ctx context.Context) (models.User, error) {
	if user, ok := UserFromContext(ctx); ok {
		return user, nil
	}
	if p.Fallback != nil {
		return p.Fallback.CurrentUser(ctx)
	}
	return models.User{}, common.ErrorUnauthorized
}

// StaticProvider always returns the same user.
type StaticProvider struct {
	User models.User
}

func (p StaticProvider) CurrentUser(context.Context) (models.User, error) {
	return p.User, nil
}
