// Package kv provides string-valued key-value stores. Every module declares
// the subset it needs in its own port/out package.
package kv

import "context"

type Store interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
