package domain

import "time"

type Ground struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Size          string    `json:"size"`
	PricePerHour  float64   `json:"pricePerHour"`
	Features      []string  `json:"features"`
	IsAvailable   bool      `json:"isAvailable"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	UserName  string    `json:"userName,omitempty"`
	GroundID  string    `json:"ground"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingSummary is the aggregate the ground's averageRating/reviewCount are kept in sync with.
type RatingSummary struct {
	Average float64
	Count   int
}

type CreateGroundRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Location     string   `json:"location" binding:"required,max=200"`
	Size         string   `json:"size" binding:"max=50"`
	PricePerHour float64  `json:"pricePerHour" binding:"required"`
	Features     []string `json:"features"`
	IsAvailable  *bool    `json:"isAvailable"`
}

type UpdateGroundRequest struct {
	Name         *string   `json:"name"`
	Location     *string   `json:"location"`
	Size         *string   `json:"size"`
	PricePerHour *float64  `json:"pricePerHour"`
	Features     *[]string `json:"features"`
	IsAvailable  *bool     `json:"isAvailable"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
