// Package memory holds an in-process seat store used for local runs and
// tests. Commits are serialized per seat; unrelated seats never contend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type seatEntry struct {
	mu   sync.Mutex
	seat domain.Seat
}

type SeatRepository struct {
	mu    sync.RWMutex
	seats map[int64]*seatEntry
	now   func() time.Time
}

func NewSeatRepository() *SeatRepository {
	return &SeatRepository{
		seats: make(map[int64]*seatEntry),
		now:   time.Now,
	}
}

func (r *SeatRepository) Initialize(ctx context.Context, rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("invalid grid %dx%d", rows, cols)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			id := domain.SeatID(row, col, cols)
			if _, ok := r.seats[id]; ok {
				continue
			}

			r.seats[id] = &seatEntry{seat: domain.Seat{
				ID:         id,
				SeatNumber: domain.SeatLabel(row, col),
				Status:     domain.SeatAvailable,
			}}
		}
	}

	return nil
}

func (r *SeatRepository) entry(seatID int64) (*seatEntry, error) {
	r.mu.RLock()
	e, ok := r.seats[seatID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("seat %d: %w", seatID, domain.ErrSeatNotFound)
	}

	return e, nil
}

func (r *SeatRepository) GetByID(ctx context.Context, seatID int64) (*domain.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := r.entry(seatID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	seat := e.seat
	e.mu.Unlock()

	return &seat, nil
}

func (r *SeatRepository) ListAll(ctx context.Context) ([]domain.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entries := make([]*seatEntry, 0, len(r.seats))
	for _, e := range r.seats {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	seats := make([]domain.Seat, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		seats = append(seats, e.seat)
		e.mu.Unlock()
	}

	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })

	return seats, nil
}

func (r *SeatRepository) CommitBooking(ctx context.Context, seatID int64, userID string, expectedVersion int64) (*domain.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, err := r.entry(seatID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.seat.IsAvailable() || e.seat.Version != expectedVersion {
		return nil, fmt.Errorf("optimistic lock failed for seat %d at version %d: %w", seatID, expectedVersion, domain.ErrSeatConflict)
	}

	e.seat.Book(userID, r.now().UTC())
	seat := e.seat

	return &seat, nil
}

// Ping lets the health check treat this store like a remote one.
func (r *SeatRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
