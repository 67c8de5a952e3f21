package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/srgjo27/seat_reservation/internal/adapter/events"
	"github.com/srgjo27/seat_reservation/internal/core/services"
	"github.com/srgjo27/seat_reservation/internal/platform/logger"
)

type RouterConfig struct {
	Bookings    *services.BookingService
	Seats       *services.SeatQueryService
	Hub         *events.Hub
	Logger      *logger.Logger
	Metrics     http.Handler
	Health      map[string]PingFunc
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if cfg.Logger != nil {
		router.Use(cfg.Logger.Middleware())
	}

	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	seatHandler := NewSeatHandler(cfg.Seats)
	bookingHandler := NewBookingHandler(cfg.Bookings)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/seats", seatHandler.ListSeats)
		v1.POST("/bookings", bookingHandler.CreateBooking)
	}

	if cfg.Hub != nil {
		router.GET("/ws/seats", NewSeatStreamHandler(cfg.Hub).Stream)
	}

	router.GET("/healthz", NewHealthHandler(cfg.Health).Check)

	if cfg.Metrics != nil {
		router.GET("/debug/metrics", gin.WrapH(cfg.Metrics))
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Content-Type")

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
		return cc
	}

	cc.AllowOrigins = origins
	return cc
}
