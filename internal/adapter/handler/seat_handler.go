package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/seat_reservation/internal/core/services"
)

type SeatHandler struct {
	svc *services.SeatQueryService
}

func NewSeatHandler(svc *services.SeatQueryService) *SeatHandler {
	return &SeatHandler{svc: svc}
}

// ListSeats returns every seat ordered by id, including the version each
// subscriber needs to seed its view.
func (h *SeatHandler) ListSeats(c *gin.Context) {
	seats, err := h.svc.ListSeats(c.Request.Context())
	if err != nil {
		c.Header("Retry-After", "1")
		respondError(c, http.StatusServiceUnavailable, errorResponse{Message: "seat inventory unavailable", Retryable: true})
		return
	}

	resp := make([]seatResponse, 0, len(seats))
	for i := range seats {
		resp = append(resp, toSeatResponse(&seats[i]))
	}

	c.JSON(http.StatusOK, resp)
}
