package appctx

import "context"

// UserContext carries the authenticated caller's identity.
type UserContext struct {
	UserID  string
	Email   string
	IsAdmin bool
}

type userKey struct{}

// WithUser adds user context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns user context or nil.
func GetUser(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(userKey{}).(*UserContext); ok {
		return u
	}
	return nil
}
