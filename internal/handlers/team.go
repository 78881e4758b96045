package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

func (h *Handler) CreateTeam(c *gin.Context) {
	var req domain.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	team, err := h.services.TeamService.CreateTeam(c.Request.Context(), caller(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, gin.H{"message": "Team created successfully", "team": team})
}

func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.services.TeamService.ListTeams(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"teams": teams})
}

func (h *Handler) GetTeam(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrTeamNotFound)
	if !ok {
		return
	}

	team, err := h.services.TeamService.GetTeam(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"team": team})
}

func (h *Handler) UpdateTeam(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrTeamNotFound)
	if !ok {
		return
	}

	var req domain.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	team, err := h.services.TeamService.UpdateTeam(c.Request.Context(), caller(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Team updated successfully", "team": team})
}

func (h *Handler) DeleteTeam(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrTeamNotFound)
	if !ok {
		return
	}

	if err := h.services.TeamService.DeleteTeam(c.Request.Context(), caller(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, domain.MessageResponse{Message: "Team deleted successfully"})
}

func (h *Handler) AddPlayer(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrTeamNotFound)
	if !ok {
		return
	}

	var req domain.AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	team, err := h.services.TeamService.AddPlayer(c.Request.Context(), caller(c), id, req.PlayerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Player added successfully", "team": team})
}

func (h *Handler) RemovePlayer(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrTeamNotFound)
	if !ok {
		return
	}
	playerID, ok := h.idParam(c, "playerId", domain.ErrUserNotFound)
	if !ok {
		return
	}

	team, err := h.services.TeamService.RemovePlayer(c.Request.Context(), caller(c), id, playerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Player removed successfully", "team": team})
}

func (h *Handler) RecordResult(c *gin.Context) {
	id, ok := h.idParam(c, "id", domain.ErrTeamNotFound)
	if !ok {
		return
	}

	var req domain.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	team, err := h.services.TeamService.RecordResult(c.Request.Context(), id, req.Result)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"message": "Result recorded successfully", "team": team})
}
