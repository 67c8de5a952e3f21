package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
)

const (
	DefaultLockTTL      = 2 * time.Second
	DefaultStoreTimeout = time.Second
)

type BookingRequest struct {
	SeatID      int64
	UserID      string
	Strategy    string
	SubmittedAt time.Time
}

func (r BookingRequest) validate() error {
	if r.SeatID <= 0 {
		return fmt.Errorf("%w: seatId is required", domain.ErrInvalidRequest)
	}

	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrInvalidRequest)
	}

	return nil
}

type BookingService struct {
	seatRepo     ports.SeatRepository
	lockers      ports.LockerResolver
	publisher    ports.SeatPublisher
	metrics      ports.MetricsRecorder
	logger       *slog.Logger
	lockTTL      time.Duration
	storeTimeout time.Duration
}

type Option func(*BookingService)

func WithLockTTL(ttl time.Duration) Option {
	return func(s *BookingService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *BookingService) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *BookingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m ports.MetricsRecorder) Option {
	return func(s *BookingService) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewBookingService(seatRepo ports.SeatRepository, lockers ports.LockerResolver, publisher ports.SeatPublisher, opts ...Option) *BookingService {
	s := &BookingService{
		seatRepo:     seatRepo,
		lockers:      lockers,
		publisher:    publisher,
		metrics:      nopMetrics{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		lockTTL:      DefaultLockTTL,
		storeTimeout: DefaultStoreTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Book runs one single-shot booking attempt: one lock acquisition, one
// conditional commit, no retries.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*domain.Seat, error) {
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now()
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	strategy, locker, err := s.lockers.Resolve(req.Strategy)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	attemptCtx, cancel := context.WithTimeout(ctx, s.lockTTL+s.storeTimeout)
	defer cancel()

	seat, err := s.book(attemptCtx, req, strategy, locker)
	latency := time.Since(start)
	s.metrics.MeasureSince([]string{"booking", "latency"}, start)

	if err != nil {
		s.recordFailure(req, strategy, latency, err)
		return nil, err
	}

	s.metrics.IncrCounter([]string{"booking", "success"}, 1)
	s.logger.Info("seat booked",
		slog.Int64("seat_id", seat.ID),
		slog.String("user_id", req.UserID),
		slog.String("strategy", strategy),
		slog.Int64("version", seat.Version),
		slog.Duration("latency", latency),
	)

	s.publish(ctx, seat)

	return seat, nil
}

func (s *BookingService) book(ctx context.Context, req BookingRequest, strategy string, locker ports.SeatLocker) (*domain.Seat, error) {
	seat, err := s.seatRepo.GetByID(ctx, req.SeatID)
	if err != nil {
		return nil, storeError(err)
	}

	if !seat.IsAvailable() {
		return nil, domain.NewSeatOccupiedError(seat)
	}

	token := uuid.NewString()
	acquired, err := locker.TryAcquire(ctx, seat.ID, token, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire %s lock for seat %d: %w", domain.ErrStoreUnavailable, strategy, seat.ID, err)
	}

	if !acquired {
		return nil, &domain.LockBusyError{SeatID: seat.ID, Strategy: strategy}
	}

	defer s.release(ctx, locker, seat.ID, token, strategy)

	current, err := s.seatRepo.GetByID(ctx, seat.ID)
	if err != nil {
		return nil, storeError(err)
	}

	if !current.IsAvailable() {
		return nil, domain.NewSeatOccupiedError(current)
	}

	booked, err := s.seatRepo.CommitBooking(ctx, current.ID, req.UserID, current.Version)
	if err != nil {
		return nil, storeError(err)
	}

	return booked, nil
}

// release runs on every exit path, including a cancelled request.
func (s *BookingService) release(ctx context.Context, locker ports.SeatLocker, seatID int64, token, strategy string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	if err := locker.Release(releaseCtx, seatID, token); err != nil {
		s.logger.Warn("failed to release seat lock",
			slog.Int64("seat_id", seatID),
			slog.String("strategy", strategy),
			slog.Any("error", err),
		)
	}
}

func (s *BookingService) publish(ctx context.Context, seat *domain.Seat) {
	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, seat.Event()); err != nil {
		s.metrics.IncrCounter([]string{"booking", "publish_failed"}, 1)
		s.logger.Warn("failed to publish seat update",
			slog.Int64("seat_id", seat.ID),
			slog.Int64("version", seat.Version),
			slog.Any("error", err),
		)
	}
}

func (s *BookingService) recordFailure(req BookingRequest, strategy string, latency time.Duration, err error) {
	outcome := "unavailable"
	switch {
	case errors.Is(err, domain.ErrSeatConflict):
		outcome = "conflict"
	case errors.Is(err, domain.ErrSeatNotFound):
		outcome = "not_found"
	}

	s.metrics.IncrCounter([]string{"booking", outcome}, 1)

	level := slog.LevelWarn
	if outcome == "unavailable" {
		level = slog.LevelError
	}

	s.logger.Log(context.Background(), level, "booking failed",
		slog.Int64("seat_id", req.SeatID),
		slog.String("user_id", req.UserID),
		slog.String("strategy", strategy),
		slog.String("outcome", outcome),
		slog.Duration("latency", latency),
		slog.Any("error", err),
	)
}

// storeError keeps domain outcomes as they are and folds everything else,
// deadline expiry included, into ErrStoreUnavailable.
func storeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrSeatNotFound),
		errors.Is(err, domain.ErrSeatConflict),
		errors.Is(err, domain.ErrStoreUnavailable):
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

type nopMetrics struct{}

func (nopMetrics) IncrCounter([]string, float32) {}
func (nopMetrics) MeasureSince([]string, time.Time) {}
