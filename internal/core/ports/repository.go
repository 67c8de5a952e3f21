package ports

import (
	"context"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type SeatRepository interface {
	Initialize(ctx context.Context, rows, cols int) error
	GetByID(ctx context.Context, seatID int64) (*domain.Seat, error)
	ListAll(ctx context.Context) ([]domain.Seat, error)
	// CommitBooking books the seat only if it is still AVAILABLE at
	// expectedVersion; otherwise it returns domain.ErrSeatConflict.
	CommitBooking(ctx context.Context, seatID int64, userID string, expectedVersion int64) (*domain.Seat, error)
}
