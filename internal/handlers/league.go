package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

func (h *Handler) CreateLeague(c *gin.Context) {
	var req domain.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	league, err := h.services.LeagueService.CreateLeague(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, gin.H{"message": "League created successfully", "league": league})
}

func (h *Handler) ListLeagues(c *gin.Context) {
	leagues, err := h.services.LeagueService.ListLeagues(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"leagues": leagues})
}

func (h *Handler) GetLeague(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrLeagueNotFound)
	if !ok {
		return
	}

	league, err := h.services.LeagueService.GetLeague(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"league": league})
}

func (h *Handler) UpdateLeague(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrLeagueNotFound)
	if !ok {
		return
	}

	var req domain.UpdateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	league, err := h.services.LeagueService.UpdateLeague(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "League updated successfully", "league": league})
}

func (h *Handler) DeleteLeague(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrLeagueNotFound)
	if !ok {
		return
	}

	if err := h.services.LeagueService.DeleteLeague(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, domain.MessageResponse{Message: "League deleted successfully"})
}

func (h *Handler) JoinLeague(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrLeagueNotFound)
	if !ok {
		return
	}

	league, err := h.services.LeagueService.JoinLeague(c.Request.Context(), id, caller(c).UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Successfully joined the league", "league": league})
}
