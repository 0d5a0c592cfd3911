package auth

import (
	"context"

	"github.com/amba-app/amba/internal/model"
)

type contextKey struct{}

// AuthContext carries the authenticated session through a request.
// AmbassadorID is zero for admin sessions.
type AuthContext struct {
	SessionID    int64
	Role         string
	AmbassadorID int64
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func IsAdmin(ctx context.Context) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return ac.Role == model.RoleAdmin
}

func AmbassadorID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.AmbassadorID
}
