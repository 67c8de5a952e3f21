package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSeatNotFound     = errors.New("seat not found")
	ErrSeatConflict     = errors.New("seat not available")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidRequest   = errors.New("invalid booking request")
	ErrUnknownStrategy  = errors.New("unknown lock strategy")
	ErrStrategyDisabled = errors.New("lock strategy not configured on this instance")
)

// SeatOccupiedError reports a seat that was already claimed.
type SeatOccupiedError struct {
	SeatID   int64
	BookedBy *string
	BookedAt *time.Time
}

func NewSeatOccupiedError(seat *Seat) *SeatOccupiedError {
	return &SeatOccupiedError{SeatID: seat.ID, BookedBy: seat.BookedBy, BookedAt: seat.BookedAt}
}

func (e *SeatOccupiedError) Error() string {
	user := "unknown user"
	if e.BookedBy != nil {
		user = *e.BookedBy
	}
	at := "unknown time"
	if e.BookedAt != nil {
		at = e.BookedAt.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("seat %d was already claimed by %s at %s", e.SeatID, user, at)
}

func (e *SeatOccupiedError) Unwrap() error { return ErrSeatConflict }

// LockBusyError reports that another booking attempt currently holds the seat.
type LockBusyError struct {
	SeatID   int64
	Strategy string
}

func (e *LockBusyError) Error() string {
	return fmt.Sprintf("seat %d is being booked by another request (%s lock busy)", e.SeatID, e.Strategy)
}

func (e *LockBusyError) Unwrap() error { return ErrSeatConflict }
