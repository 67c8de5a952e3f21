package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports/mocks"
	"github.com/srgjo27/seat_reservation/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListSeats(t *testing.T) {
	repo := mocks.NewSeatRepository(t)
	svc := services.NewSeatQueryService(repo, nil)

	want := []domain.Seat{*availableSeat(1, 0), *bookedSeat(2, 1, "bob")}
	repo.On("ListAll", mock.Anything).Return(want, nil)

	seats, err := svc.ListSeats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, seats)
}

func TestListSeats_StoreDown(t *testing.T) {
	repo := mocks.NewSeatRepository(t)
	svc := services.NewSeatQueryService(repo, nil)

	repo.On("ListAll", mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := svc.ListSeats(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
