package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
)

// SeatQueryService serves the read-only snapshot new observers use to seed
// their local view before subscribing.
type SeatQueryService struct {
	seatRepo ports.SeatRepository
	logger   *slog.Logger
}

func NewSeatQueryService(seatRepo ports.SeatRepository, logger *slog.Logger) *SeatQueryService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SeatQueryService{seatRepo: seatRepo, logger: logger}
}

func (s *SeatQueryService) ListSeats(ctx context.Context) ([]domain.Seat, error) {
	s.logger.Debug("loading seat inventory")

	seats, err := s.seatRepo.ListAll(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	return seats, nil
}
