package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

func (h *Handler) CreateMatch(c *gin.Context) {
	var req domain.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	match, err := h.services.MatchService.CreateMatch(c.Request.Context(), caller(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, gin.H{"message": "Match created successfully", "match": match})
}

func (h *Handler) ListMatches(c *gin.Context) {
	status := domain.MatchStatus(c.Query("status"))

	matches, err := h.services.MatchService.ListMatches(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"matches": matches})
}

func (h *Handler) GetMatch(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrMatchNotFound)
	if !ok {
		return
	}

	match, err := h.services.MatchService.GetMatch(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"match": match})
}

func (h *Handler) UpdateMatch(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrMatchNotFound)
	if !ok {
		return
	}

	var req domain.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	match, err := h.services.MatchService.UpdateMatch(c.Request.Context(), caller(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Match updated successfully", "match": match})
}

func (h *Handler) DeleteMatch(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrMatchNotFound)
	if !ok {
		return
	}

	if err := h.services.MatchService.DeleteMatch(c.Request.Context(), caller(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, domain.MessageResponse{Message: "Match deleted successfully"})
}

func (h *Handler) JoinMatch(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrMatchNotFound)
	if !ok {
		return
	}

	var req domain.JoinMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	match, err := h.services.MatchService.JoinMatch(c.Request.Context(), id, caller(c).UserID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Successfully joined the match", "match": match})
}

func (h *Handler) LeaveMatch(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrMatchNotFound)
	if !ok {
		return
	}

	match, err := h.services.MatchService.LeaveMatch(c.Request.Context(), id, caller(c).UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Successfully left the match", "match": match})
}
