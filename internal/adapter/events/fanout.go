package events

import (
	"context"
	"errors"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
)

// Fanout publishes to every sink and reports all failures together.
type Fanout []ports.SeatPublisher

func (f Fanout) Publish(ctx context.Context, event domain.SeatEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
