package ports

import (
	"context"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

type SeatPublisher interface {
	Publish(ctx context.Context, event domain.SeatEvent) error
}

type MetricsRecorder interface {
	IncrCounter(key []string, val float32)
	MeasureSince(key []string, start time.Time)
}
