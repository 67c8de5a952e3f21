package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/core/services"
)

const (
	CodeSeatOccupied = "SEAT_OCCUPIED"
	CodeSeatLocked   = "SEAT_LOCKED"
)

type createBookingRequest struct {
	SeatID   int64  `json:"seatId" binding:"required,gt=0"`
	UserID   string `json:"userId" binding:"required,max=128"`
	Strategy string `json:"strategy" binding:"omitempty,max=32"`
}

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, errorResponse{Message: bindingMessage(err)})
		return
	}

	seat, err := h.svc.Book(c.Request.Context(), services.BookingRequest{
		SeatID:   req.SeatID,
		UserID:   req.UserID,
		Strategy: req.Strategy,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSeatResponse(seat))
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var occupied *domain.SeatOccupiedError
	var busy *domain.LockBusyError

	switch {
	case errors.As(err, &occupied):
		respondError(c, http.StatusConflict, errorResponse{Message: err.Error(), Code: CodeSeatOccupied})
	case errors.As(err, &busy):
		respondError(c, http.StatusConflict, errorResponse{Message: err.Error(), Code: CodeSeatLocked})
	case errors.Is(err, domain.ErrSeatConflict):
		respondError(c, http.StatusConflict, errorResponse{Message: "seat was booked by another request", Code: CodeSeatOccupied})
	case errors.Is(err, domain.ErrSeatNotFound):
		respondError(c, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrUnknownStrategy), errors.Is(err, domain.ErrStrategyDisabled):
		respondError(c, http.StatusBadRequest, errorResponse{Message: err.Error()})
	default:
		c.Header("Retry-After", "1")
		respondError(c, http.StatusServiceUnavailable, errorResponse{
			Message:   "booking could not be completed, please retry",
			Retryable: true,
		})
	}
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid json body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}

	return strings.Join(msgs, "; ")
}

func fieldName(goName string) string {
	switch goName {
	case "SeatID":
		return "seatId"
	case "UserID":
		return "userId"
	case "Strategy":
		return "strategy"
	}
	return goName
}
