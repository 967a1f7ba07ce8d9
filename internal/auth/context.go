// internal/auth/context.go
package auth

import (
	"context"
	"errors"

	"github.com/VitaminP8/blog/models"
)

type contextKey string

const userKey = contextKey("user")

var ErrNoUser = errors.New("user not found in context")

// Сохраняет пользователя текущей сессии в контексте
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Достает пользователя из контекста; анонимный запрос - ErrNoUser
func GetUserFromContext(ctx context.Context) (*models.User, error) {
	u, ok := ctx.Value(userKey).(*models.User)
	if !ok || u == nil {
		return nil, ErrNoUser
	}
	return u, nil
}

// CurrentUser - то же самое, но nil для анонимного запроса
func CurrentUser(ctx context.Context) *models.User {
	u, _ := GetUserFromContext(ctx)
	return u
}
