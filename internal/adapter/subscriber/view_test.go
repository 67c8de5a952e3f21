package subscriber_test

import (
	"testing"

	"github.com/srgjo27/seat_reservation/internal/adapter/subscriber"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSeatView_VersionFilterIsPerSeat(t *testing.T) {
	view := subscriber.NewSeatView()
	view.Seed([]domain.SeatEvent{
		{SeatID: 5, SeatNumber: "A-5", Booked: true, BookedBy: strPtr("alice"), Version: 3},
		{SeatID: 6, SeatNumber: "A-6", Version: 0},
	})

	applied := view.Apply(domain.SeatEvent{SeatID: 6, SeatNumber: "A-6", Booked: true, BookedBy: strPtr("bob"), Version: 1})
	assert.True(t, applied)

	seat6, ok := view.Get(6)
	require.True(t, ok)
	assert.True(t, seat6.Booked)
	assert.Equal(t, int64(1), seat6.Version)

	seat5, ok := view.Get(5)
	require.True(t, ok)
	assert.Equal(t, int64(3), seat5.Version)
	assert.Equal(t, "alice", *seat5.BookedBy)
}

func TestSeatView_DropsStaleAndDuplicateEvents(t *testing.T) {
	view := subscriber.NewSeatView()
	view.Seed([]domain.SeatEvent{{SeatID: 5, SeatNumber: "A-5", Booked: true, BookedBy: strPtr("alice"), Version: 3}})

	assert.False(t, view.Apply(domain.SeatEvent{SeatID: 5, Version: 3, BookedBy: strPtr("mallory")}))
	assert.False(t, view.Apply(domain.SeatEvent{SeatID: 5, Version: 2}))

	seat, _ := view.Get(5)
	assert.Equal(t, "alice", *seat.BookedBy)

	assert.True(t, view.Apply(domain.SeatEvent{SeatID: 5, SeatNumber: "A-5", Version: 4, Booked: true, BookedBy: strPtr("alice")}))
}

func TestSeatView_FallsBackToSeatNumber(t *testing.T) {
	view := subscriber.NewSeatView()
	view.Seed([]domain.SeatEvent{{SeatID: 11, SeatNumber: "B-1"}})

	assert.True(t, view.Apply(domain.SeatEvent{SeatNumber: "B-1", Booked: true, Version: 1}))

	seat, ok := view.Get(11)
	require.True(t, ok)
	assert.True(t, seat.Booked)
	assert.Equal(t, int64(11), seat.SeatID)

	assert.False(t, view.Apply(domain.SeatEvent{SeatNumber: "Z-9", Version: 1}))
}

func TestSeatView_UnknownSeatIsAdded(t *testing.T) {
	view := subscriber.NewSeatView()
	view.Seed([]domain.SeatEvent{{SeatID: 1, SeatNumber: "A-1"}})

	assert.True(t, view.Apply(domain.SeatEvent{SeatID: 42, SeatNumber: "E-2", Version: 1}))
	assert.Len(t, view.Seats(), 2)

	seat, ok := view.Get(42)
	require.True(t, ok)
	assert.Equal(t, "E-2", seat.SeatNumber)
}

func TestSeatView_MismatchedIDMatchesBySeatNumber(t *testing.T) {
	view := subscriber.NewSeatView()
	view.Seed([]domain.SeatEvent{{SeatID: 1, SeatNumber: "A-1"}, {SeatID: 2, SeatNumber: "A-2"}})

	assert.True(t, view.Apply(domain.SeatEvent{SeatID: 501, SeatNumber: "A-1", Booked: true, BookedBy: strPtr("dave"), Version: 1}))

	assert.Len(t, view.Seats(), 2)
	_, phantom := view.Get(501)
	assert.False(t, phantom)

	seat, ok := view.Get(1)
	require.True(t, ok)
	assert.True(t, seat.Booked)
	assert.Equal(t, int64(1), seat.Version)
	assert.Equal(t, int64(1), seat.SeatID)

	assert.False(t, view.Apply(domain.SeatEvent{SeatID: 501, SeatNumber: "A-1", Version: 1}))
}

func TestSeatView_SeatsOrdered(t *testing.T) {
	view := subscriber.NewSeatView()
	view.Seed([]domain.SeatEvent{{SeatID: 3}, {SeatID: 1}, {SeatID: 2}})

	seats := view.Seats()
	require.Len(t, seats, 3)
	for i, seat := range seats {
		assert.Equal(t, int64(i+1), seat.SeatID)
	}
}
