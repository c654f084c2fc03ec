package auth

import "context"

type identityKey struct{}

// Identity is the authenticated caller as carried through the request
// context. WarungID is empty for an owner who has not onboarded a shop yet.
type Identity struct {
	UserID   string
	Role     string
	WarungID string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
