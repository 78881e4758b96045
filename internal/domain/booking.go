package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user"`
	GroundID       string        `json:"ground"`
	GroundName     string        `json:"groundName,omitempty"`
	GroundLocation string        `json:"groundLocation,omitempty"`
	Date           time.Time     `json:"date"`
	Time           string        `json:"time"`
	TotalAmount    float64       `json:"totalAmount"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

type CreateBookingRequest struct {
	GroundID string `json:"groundId" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}
