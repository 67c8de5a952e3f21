package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type seatResponse struct {
	SeatID     int64      `json:"seatId"`
	SeatNumber string     `json:"seatNumber"`
	Booked     bool       `json:"booked"`
	BookedBy   *string    `json:"bookedBy"`
	BookedAt   *time.Time `json:"bookedAt"`
	Version    int64      `json:"version"`
}

func toSeatResponse(seat *domain.Seat) seatResponse {
	return seatResponse{
		SeatID:     seat.ID,
		SeatNumber: seat.SeatNumber,
		Booked:     !seat.IsAvailable(),
		BookedBy:   seat.BookedBy,
		BookedAt:   seat.BookedAt,
		Version:    seat.Version,
	}
}

type errorResponse struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func respondError(c *gin.Context, status int, body errorResponse) {
	c.AbortWithStatusJSON(status, body)
}
