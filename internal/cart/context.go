package cart

import (
	"context"
	"errors"
)

var ErrNoStore = errors.New("cart store accessed outside of a cart session scope")

type storeKey struct{}

func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

func FromContext(ctx context.Context) (*Store, error) {
	if s, ok := ctx.Value(storeKey{}).(*Store); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoStore
}

// MustFromContext panics with ErrNoStore when no store was provisioned.
// A missing store is a wiring bug, not a runtime condition.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
