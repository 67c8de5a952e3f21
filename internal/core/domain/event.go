package domain

import "time"

// SeatEvent is the wire shape of a committed seat change. Subscribers order
// events per seat by Version.
type SeatEvent struct {
	SeatID     int64      `json:"seatId"`
	SeatNumber string     `json:"seatNumber"`
	Booked     bool       `json:"booked"`
	BookedBy   *string    `json:"bookedBy"`
	BookedAt   *time.Time `json:"bookedAt"`
	Version    int64      `json:"version"`
}
