// Package authctx carries the caller's bearer token and claims through
// request context so outbound identity-service calls can forward the
// same credentials without any global state.
package authctx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	tokenKey ctxKey = iota
	identityKey
)

// Identity is the authenticated caller as seen by the token validator.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
