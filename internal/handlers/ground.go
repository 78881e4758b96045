package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

func (h *Handler) CreateGround(c *gin.Context) {
	var req domain.CreateGroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	ground, err := h.services.GroundService.CreateGround(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, gin.H{"message": "Ground created successfully", "ground": ground})
}

// ListGrounds returns every ground; ?available=true keeps only bookable ones.
func (h *Handler) ListGrounds(c *gin.Context) {
	availableOnly := false
	if param := c.Query("available"); param != "" {
		if parsed, err := strconv.ParseBool(param); err == nil {
			availableOnly = parsed
		}
	}

	grounds, err := h.services.GroundService.ListGrounds(c.Request.Context(), availableOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"grounds": grounds})
}

func (h *Handler) GetGround(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrGroundNotFound)
	if !ok {
		return
	}

	ground, err := h.services.GroundService.GetGround(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"ground": ground})
}

func (h *Handler) UpdateGround(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrGroundNotFound)
	if !ok {
		return
	}

	var req domain.UpdateGroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	ground, err := h.services.GroundService.UpdateGround(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Ground updated successfully", "ground": ground})
}

func (h *Handler) DeleteGround(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrGroundNotFound)
	if !ok {
		return
	}

	if err := h.services.GroundService.DeleteGround(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, domain.MessageResponse{Message: "Ground deleted successfully"})
}

func (h *Handler) AddReview(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrGroundNotFound)
	if !ok {
		return
	}

	var req domain.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	review, err := h.services.GroundService.AddReview(c.Request.Context(), id, caller(c).UserID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, gin.H{"message": "Review added successfully", "review": review})
}

func (h *Handler) ListReviews(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrGroundNotFound)
	if !ok {
		return
	}

	reviews, err := h.services.GroundService.ListReviews(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"reviews": reviews})
}
