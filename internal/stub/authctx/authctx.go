package authctx

import (
	"context"

	"github.com/SamHez/bodymax-gym/internal/domain"
)

type contextKey string

const userContextKey contextKey = "currentUser"

func WithCurrentUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func FromContext(ctx context.Context) *domain.User {
	val, ok := ctx.Value(userContextKey).(domain.User)
	if !ok {
		return nil
	}
	return &val
}
