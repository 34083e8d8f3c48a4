package middleware

import (
	"context"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
)

type contextKey int

const (
	identityCtxKey contextKey = iota
	membershipCtxKey
)

// Identity is the caller's resolved authentication state. The zero value is
// Unauthenticated; guards branch on User() explicitly instead of probing an
// untyped context payload.
type Identity struct {
	user *model.User
}

// Authenticated wraps a resolved profile.
func Authenticated(user *model.User) Identity {
	return Identity{user: user}
}

// User returns the authenticated profile, or false for an unauthenticated
// caller.
func (i Identity) User() (*model.User, bool) {
	if i.user == nil {
		return nil, false
	}
	return i.user, true
}

// WithIdentity attaches the caller identity to the request context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromContext returns the attached identity; absent means
// Unauthenticated.
func IdentityFromContext(ctx context.Context) Identity {
	if identity, ok := ctx.Value(identityCtxKey).(Identity); ok {
		return identity
	}
	return Identity{}
}

// WithMembership attaches the caller's band membership resolved by a guard.
func WithMembership(ctx context.Context, member *model.BandMember) context.Context {
	return context.WithValue(ctx, membershipCtxKey, member)
}

// MembershipFromContext returns the membership attached by a band guard.
func MembershipFromContext(ctx context.Context) (*model.BandMember, bool) {
	member, ok := ctx.Value(membershipCtxKey).(*model.BandMember)
	return member, ok
}
