package auth

import (
	"context"

	"github.com/folio-hub/folio-server/internal/models"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// ContextWithClaims stores validated token claims in the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by the auth middleware,
// or nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	if v := ctx.Value(claimsKey); v != nil {
		if c, ok := v.(*Claims); ok {
			return c
		}
	}
	return nil
}

// UserIDFromContext returns the authenticated user's id, or "".
func UserIDFromContext(ctx context.Context) string {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.UserID
	}
	return ""
}

// RoleFromContext returns the authenticated user's role, or "".
func RoleFromContext(ctx context.Context) models.Role {
	if c := ClaimsFromContext(ctx); c != nil {
		return c.Role
	}
	return ""
}
