package store

import (
	"context"
)

// StateStore handles persistent application state.
type StateStore interface {
	GetState(ctx context.Context, key string) (string, bool)
	SetState(ctx context.Context, key, val string) error
	DeleteState(ctx context.Context, key string) error
}

// StateLister enumerates and clears stored state.
type StateLister interface {
	ListState(ctx context.Context) (map[string]string, error)
	ClearState(ctx context.Context) error
}
