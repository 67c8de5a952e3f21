package domain

import (
	"strconv"
	"time"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBooked    SeatStatus = "BOOKED"
)

type Seat struct {
	ID         int64
	SeatNumber string
	Status     SeatStatus
	BookedBy   *string
	BookedAt   *time.Time
	Version    int64
}

func (s *Seat) IsAvailable() bool {
	return s.Status == SeatAvailable
}

// Book applies the AVAILABLE -> BOOKED transition in place. Callers must
// already hold the seat's commit guard.
func (s *Seat) Book(userID string, at time.Time) {
	s.Status = SeatBooked
	s.BookedBy = &userID
	s.BookedAt = &at
	s.Version++
}

func (s *Seat) Event() SeatEvent {
	return SeatEvent{
		SeatID:     s.ID,
		SeatNumber: s.SeatNumber,
		Booked:     !s.IsAvailable(),
		BookedBy:   s.BookedBy,
		BookedAt:   s.BookedAt,
		Version:    s.Version,
	}
}

// SeatID returns the row-major id of the seat at (row, col), both zero-based.
func SeatID(row, col, cols int) int64 {
	return int64(row*cols + col + 1)
}

// SeatLabel builds the seat number for a zero-based row and column, e.g. "A-1".
// Rows past Z continue as AA, AB, ...
func SeatLabel(row, col int) string {
	return RowLetter(row) + "-" + strconv.Itoa(col+1)
}

func RowLetter(row int) string {
	var b []byte
	for n := row + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}
