package ports

import (
	"context"
	"time"
)

// SeatLocker is a short-lived, per-seat mutual exclusion primitive.
// TryAcquire never waits: it reports false when another holder owns the seat.
// Release only removes the lock when token still owns it.
type SeatLocker interface {
	TryAcquire(ctx context.Context, seatID int64, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, seatID int64, token string) error
}

type LockerResolver interface {
	Resolve(strategy string) (string, SeatLocker, error)
}
