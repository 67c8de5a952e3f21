package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SeatLockRepository backs the DATABASE lock strategy with the seat_locks
// table. A row is a live lock until expires_at passes; expired rows may be
// taken over by the next acquirer or removed by the sweeper.
type SeatLockRepository struct {
	db *sql.DB
}

func NewSeatLockRepository(db *sql.DB) *SeatLockRepository {
	return &SeatLockRepository{db: db}
}

func (r *SeatLockRepository) TryAcquire(ctx context.Context, seatID int64, token string, ttl time.Duration) (bool, error) {
	query := `
	INSERT INTO seat_locks (seat_id, holder, expires_at)
	VALUES ($1, $2, NOW() + $3 * INTERVAL '1 millisecond')
	ON CONFLICT (seat_id) DO UPDATE
	SET holder = EXCLUDED.holder,
		expires_at = EXCLUDED.expires_at
	WHERE seat_locks.expires_at < NOW()
	`

	result, err := r.db.ExecContext(ctx, query, seatID, token, ttl.Milliseconds())
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock for seat %d: %w", seatID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (r *SeatLockRepository) Release(ctx context.Context, seatID int64, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM seat_locks WHERE seat_id = $1 AND holder = $2`, seatID, token)
	if err != nil {
		return fmt.Errorf("failed to release lock for seat %d: %w", seatID, err)
	}

	return nil
}

// DeleteExpired removes locks whose holders never released them.
func (r *SeatLockRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seat_locks WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
