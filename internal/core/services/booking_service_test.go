package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports/mocks"
	"github.com/srgjo27/seat_reservation/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo      *mocks.SeatRepository
	resolver  *mocks.LockerResolver
	locker    *mocks.SeatLocker
	publisher *mocks.SeatPublisher
	service   *services.BookingService
}

func newFixture(t *testing.T, opts ...services.Option) *fixture {
	f := &fixture{
		repo:      mocks.NewSeatRepository(t),
		resolver:  mocks.NewLockerResolver(t),
		locker:    mocks.NewSeatLocker(t),
		publisher: mocks.NewSeatPublisher(t),
	}
	f.service = services.NewBookingService(f.repo, f.resolver, f.publisher, opts...)
	return f
}

func availableSeat(id, version int64) *domain.Seat {
	return &domain.Seat{ID: id, SeatNumber: "A-1", Status: domain.SeatAvailable, Version: version}
}

func bookedSeat(id, version int64, user string) *domain.Seat {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.Seat{ID: id, SeatNumber: "A-1", Status: domain.SeatBooked, BookedBy: &user, BookedAt: &at, Version: version}
}

func TestBook_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.resolver.On("Resolve", "REDIS").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(1)).Return(availableSeat(1, 0), nil).Twice()
	f.locker.On("TryAcquire", mock.Anything, int64(1), mock.AnythingOfType("string"), services.DefaultLockTTL).Return(true, nil)
	f.repo.On("CommitBooking", mock.Anything, int64(1), "alice", int64(0)).Return(bookedSeat(1, 1, "alice"), nil)
	f.locker.On("Release", mock.Anything, int64(1), mock.AnythingOfType("string")).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(ev domain.SeatEvent) bool {
		return ev.SeatID == 1 && ev.Booked && ev.Version == 1 && *ev.BookedBy == "alice"
	})).Return(nil)

	seat, err := f.service.Book(ctx, services.BookingRequest{SeatID: 1, UserID: "alice", Strategy: "REDIS"})

	require.NoError(t, err)
	assert.Equal(t, domain.SeatBooked, seat.Status)
	assert.Equal(t, int64(1), seat.Version)
}

func TestBook_ReleasesWithTheAcquiredToken(t *testing.T) {
	f := newFixture(t)

	var acquired, released string
	f.resolver.On("Resolve", "").Return("LOCAL", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(3)).Return(availableSeat(3, 0), nil)
	f.locker.On("TryAcquire", mock.Anything, int64(3), mock.Anything, services.DefaultLockTTL).
		Run(func(args mock.Arguments) { acquired = args.String(2) }).
		Return(true, nil)
	f.repo.On("CommitBooking", mock.Anything, int64(3), "alice", int64(0)).Return(bookedSeat(3, 1, "alice"), nil)
	f.locker.On("Release", mock.Anything, int64(3), mock.Anything).
		Run(func(args mock.Arguments) { released = args.String(2) }).
		Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 3, UserID: "alice"})

	require.NoError(t, err)
	assert.NotEmpty(t, acquired)
	assert.Equal(t, acquired, released)
}

func TestBook_AlreadyBookedSkipsLock(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(2)).Return(bookedSeat(2, 1, "bob"), nil)

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 2, UserID: "alice"})

	require.ErrorIs(t, err, domain.ErrSeatConflict)
	var occupied *domain.SeatOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, "bob", *occupied.BookedBy)
	f.locker.AssertNotCalled(t, "TryAcquire", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestBook_LockBusy(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "DATABASE").Return("DATABASE", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(4)).Return(availableSeat(4, 0), nil).Once()
	f.locker.On("TryAcquire", mock.Anything, int64(4), mock.Anything, mock.Anything).Return(false, nil)

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 4, UserID: "alice", Strategy: "DATABASE"})

	require.ErrorIs(t, err, domain.ErrSeatConflict)
	var busy *domain.LockBusyError
	require.ErrorAs(t, err, &busy)
	assert.Equal(t, "DATABASE", busy.Strategy)
	f.locker.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestBook_BookedWhileWaitingForLock(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(5)).Return(availableSeat(5, 0), nil).Once()
	f.locker.On("TryAcquire", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(true, nil)
	f.repo.On("GetByID", mock.Anything, int64(5)).Return(bookedSeat(5, 1, "carol"), nil).Once()
	f.locker.On("Release", mock.Anything, int64(5), mock.Anything).Return(nil)

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 5, UserID: "alice"})

	require.ErrorIs(t, err, domain.ErrSeatConflict)
	f.repo.AssertNotCalled(t, "CommitBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBook_CommitConflictStillReleases(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(6)).Return(availableSeat(6, 0), nil)
	f.locker.On("TryAcquire", mock.Anything, int64(6), mock.Anything, mock.Anything).Return(true, nil)
	f.repo.On("CommitBooking", mock.Anything, int64(6), "alice", int64(0)).
		Return(nil, errors.Join(errors.New("optimistic lock failed"), domain.ErrSeatConflict))
	f.locker.On("Release", mock.Anything, int64(6), mock.Anything).Return(nil).Once()

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 6, UserID: "alice"})

	assert.ErrorIs(t, err, domain.ErrSeatConflict)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestBook_ReleaseSurvivesCancelledRequest(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(7)).Return(availableSeat(7, 0), nil).Once()
	f.locker.On("TryAcquire", mock.Anything, int64(7), mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(true, nil)
	f.repo.On("GetByID", mock.Anything, int64(7)).
		Return(func(ctx context.Context, _ int64) (*domain.Seat, error) { return nil, ctx.Err() }).Once()
	f.locker.On("Release", mock.Anything, int64(7), mock.Anything).
		Run(func(args mock.Arguments) {
			assert.NoError(t, args.Get(0).(context.Context).Err())
		}).
		Return(nil)

	_, err := f.service.Book(ctx, services.BookingRequest{SeatID: 7, UserID: "alice"})

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBook_LockBackendDown(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(8)).Return(availableSeat(8, 0), nil)
	f.locker.On("TryAcquire", mock.Anything, int64(8), mock.Anything, mock.Anything).Return(false, errors.New("dial tcp: connection refused"))

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 8, UserID: "alice"})

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrSeatConflict)
}

func TestBook_StoreDown(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(9)).Return(nil, errors.New("pq: too many connections"))

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 9, UserID: "alice"})

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestBook_SlowStoreHitsDeadline(t *testing.T) {
	f := newFixture(t, services.WithLockTTL(30*time.Millisecond), services.WithStoreTimeout(20*time.Millisecond))

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(10)).
		Return(func(ctx context.Context, _ int64) (*domain.Seat, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	start := time.Now()
	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 10, UserID: "alice"})

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBook_NotFound(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(9999)).Return(nil, domain.ErrSeatNotFound)

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 9999, UserID: "alice"})

	assert.ErrorIs(t, err, domain.ErrSeatNotFound)
}

func TestBook_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  services.BookingRequest
	}{
		{name: "zero seat", req: services.BookingRequest{UserID: "alice"}},
		{name: "negative seat", req: services.BookingRequest{SeatID: -1, UserID: "alice"}},
		{name: "blank user", req: services.BookingRequest{SeatID: 1, UserID: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service.Book(context.Background(), tt.req)

			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
			f.resolver.AssertNotCalled(t, "Resolve", mock.Anything)
		})
	}
}

func TestBook_UnknownStrategy(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "ETCD").Return("", nil, domain.ErrUnknownStrategy)

	_, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 1, UserID: "alice", Strategy: "ETCD"})

	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
	f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestBook_PublishFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)

	f.resolver.On("Resolve", "").Return("REDIS", f.locker, nil)
	f.repo.On("GetByID", mock.Anything, int64(11)).Return(availableSeat(11, 2), nil)
	f.locker.On("TryAcquire", mock.Anything, int64(11), mock.Anything, mock.Anything).Return(true, nil)
	f.repo.On("CommitBooking", mock.Anything, int64(11), "alice", int64(2)).Return(bookedSeat(11, 3, "alice"), nil)
	f.locker.On("Release", mock.Anything, int64(11), mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	seat, err := f.service.Book(context.Background(), services.BookingRequest{SeatID: 11, UserID: "alice"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), seat.Version)
}
