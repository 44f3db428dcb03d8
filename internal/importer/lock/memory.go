// Package lock provides the per-key mutual exclusion the importer takes
// around person creation, so two concurrent batches cannot create the
// same person twice.
package lock

import (
	"context"
	"sync"
)

// MemoryLocker serializes keys within one process. It is the fallback
// when Redis is not configured, and sufficient for a single-node
// deployment.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMemory() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	keyLock, exists := l.locks[key]
	if !exists {
		keyLock = &sync.Mutex{}
		l.locks[key] = keyLock
	}
	l.mu.Unlock()

	keyLock.Lock()
	return keyLock.Unlock, nil
}
