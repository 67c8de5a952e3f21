package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/srgjo27/seat_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_IsIdempotent(t *testing.T) {
	repo := memory.NewSeatRepository()
	ctx := context.Background()

	require.NoError(t, repo.Initialize(ctx, 10, 10))

	booked, err := repo.CommitBooking(ctx, 5, "alice", 0)
	require.NoError(t, err)

	require.NoError(t, repo.Initialize(ctx, 10, 10))

	seats, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, seats, 100)

	again, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, booked.Version, again.Version)
	assert.Equal(t, domain.SeatBooked, again.Status)
}

func TestListAll_OrderedWithLabels(t *testing.T) {
	repo := memory.NewSeatRepository()
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx, 10, 10))

	seats, err := repo.ListAll(ctx)
	require.NoError(t, err)

	for i, seat := range seats {
		assert.Equal(t, int64(i+1), seat.ID)
	}

	assert.Equal(t, "A-1", seats[0].SeatNumber)
	assert.Equal(t, "A-10", seats[9].SeatNumber)
	assert.Equal(t, "B-1", seats[10].SeatNumber)
	assert.Equal(t, "J-10", seats[99].SeatNumber)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := memory.NewSeatRepository()
	require.NoError(t, repo.Initialize(context.Background(), 2, 2))

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrSeatNotFound)
}

func TestCommitBooking_VersionGuard(t *testing.T) {
	repo := memory.NewSeatRepository()
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx, 1, 3))

	_, err := repo.CommitBooking(ctx, 2, "bob", 7)
	assert.ErrorIs(t, err, domain.ErrSeatConflict)

	seat, err := repo.CommitBooking(ctx, 2, "bob", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seat.Version)
	require.NotNil(t, seat.BookedBy)
	assert.Equal(t, "bob", *seat.BookedBy)
	assert.NotNil(t, seat.BookedAt)

	_, err = repo.CommitBooking(ctx, 2, "carol", 1)
	assert.ErrorIs(t, err, domain.ErrSeatConflict)
}

func TestCommitBooking_ConcurrentSingleWinner(t *testing.T) {
	repo := memory.NewSeatRepository()
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx, 1, 1))

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, conflicts := 0, 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CommitBooking(ctx, 1, "user", 0)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrSeatConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
}
