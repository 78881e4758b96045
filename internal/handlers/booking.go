package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

func (h *Handler) CreateBooking(c *gin.Context) {
	var req domain.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	booking, err := h.services.BookingService.CreateBooking(c.Request.Context(), caller(c).UserID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": booking})
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.services.BookingService.ListBookings(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListUserBookings(c *gin.Context) {
	bookings, err := h.services.BookingService.ListUserBookings(c.Request.Context(), caller(c).UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrBookingNotFound)
	if !ok {
		return
	}

	booking, err := h.services.BookingService.CancelBooking(c.Request.Context(), caller(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": booking})
}
