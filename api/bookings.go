package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type commitBookingRequest struct {
	FlightID       int64    `json:"flight_id"`
	RequestedSeats int      `json:"requested_seats"`
	Seats          []string `json:"seats"`
}

type bookingResponse struct {
	ID         int64  `json:"id"`
	FlightID   int64  `json:"flight_id"`
	SeatNumber string `json:"seat_number"`
	Status     string `json:"status"`
	BookedAt   string `json:"booked_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.commit)
	router.GET("/my", h.listMine)
	router.GET("/", h.listAll)
	router.GET("/seatmap/:flightID", h.seatMap)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) commit(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}
	var req commitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.service.CommitBooking(c.Request.Context(), booking.CommitBookingInput{
		UserID:         userID,
		FlightID:       req.FlightID,
		RequestedSeats: req.RequestedSeats,
		Seats:          req.Seats,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusCreated, out)
}

func (h *BookingHandler) listMine(c *gin.Context) {
	userID, _, ok := requireUser(c)
	if !ok {
		return
	}
	bookings, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) listAll(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) seatMap(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("flightID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}
	seats, err := h.service.SeatMap(c.Request.Context(), flightID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}

func (h *BookingHandler) delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		FlightID:   b.FlightID,
		SeatNumber: b.SeatNumber,
		Status:     string(b.Status),
		BookedAt:   b.BookedAt.Format(time.RFC3339),
	}
}
