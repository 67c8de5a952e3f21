package lock

import (
	"context"
	"sync"
	"time"
)

type localLock struct {
	holder    string
	expiresAt time.Time
}

// LocalLocker keeps seat locks in process memory. It only serializes
// attempts handled by this instance.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[int64]localLock
	now   func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		locks: make(map[int64]localLock),
		now:   time.Now,
	}
}

func (l *LocalLocker) TryAcquire(ctx context.Context, seatID int64, token string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if current, ok := l.locks[seatID]; ok && now.Before(current.expiresAt) {
		return false, nil
	}

	l.locks[seatID] = localLock{holder: token, expiresAt: now.Add(ttl)}

	return true, nil
}

func (l *LocalLocker) Release(ctx context.Context, seatID int64, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if current, ok := l.locks[seatID]; ok && current.holder == token {
		delete(l.locks, seatID)
	}

	return nil
}

// Sweep drops expired entries so abandoned locks do not accumulate.
func (l *LocalLocker) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, current := range l.locks {
		if !now.Before(current.expiresAt) {
			delete(l.locks, id)
			removed++
		}
	}

	return removed
}
