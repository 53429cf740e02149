package tx

import (
	"context"
	"sync"
)

// Manager wraps transactional boundaries for multi-adapter operations.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// Locker scopes a Manager to a single storage key.
type Locker interface {
	For(key string) Manager
}

// KeyedLocker serializes read-modify-write cycles per key. Locks are not
// reentrant: fn must not call Within for the same key again.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: map[string]*sync.Mutex{}}
}

func (l *KeyedLocker) For(key string) Manager {
	return keyedManager{locker: l, key: key}
}

func (l *KeyedLocker) lock(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

type keyedManager struct {
	locker *KeyedLocker
	key    string
}

func (m keyedManager) Within(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mu := m.locker.lock(m.key)
	mu.Lock()
	defer mu.Unlock()
	return fn(ctx)
}
