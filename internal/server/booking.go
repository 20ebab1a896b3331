package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	bookingdomain "github.com/riverasoft/reservas/internal/booking/domain"
	"github.com/riverasoft/reservas/pkg/timefmt"
)

type createBookingRequest struct {
	ScheduledAt string         `json:"scheduled_at"`
	ServiceName string         `json:"service_name"`
	Metadata    map[string]any `json:"metadata"`
}

type bookingResponse struct {
	bookingdomain.Booking
	FormattedDate string `json:"formatted_date"`
}

func (s *Server) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.Create(c.Request.Context(), bookingdomain.CreateBookingRequest{
		ScheduledAt: strings.TrimSpace(req.ScheduledAt),
		ServiceName: strings.TrimSpace(req.ServiceName),
		Metadata:    req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MyBookings(c *gin.Context) {
	bookings, err := s.bookingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": formatBookings(bookings)})
}

func (s *Server) NextBookings(c *gin.Context) {
	bookings, err := s.bookingSvc.ListUpcoming(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": formatBookings(bookings)})
}

func (s *Server) CancelBooking(c *gin.Context) {
	resp, err := s.bookingSvc.Cancel(c.Request.Context(), bookingdomain.CancelBookingRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBooking(c *gin.Context) {
	deleted, err := s.bookingSvc.Delete(c.Request.Context(), bookingdomain.DeleteBookingRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deleted})
}

func formatBookings(bookings []bookingdomain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, bookingResponse{
			Booking:       booking,
			FormattedDate: timefmt.Second(booking.ScheduledAt),
		})
	}
	return out
}
