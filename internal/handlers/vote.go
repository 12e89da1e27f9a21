package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// VoteHandler handles vote and rating endpoints.
type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Cast handles POST /api/items/:id/vote
func (h *VoteHandler) Cast(c *gin.Context) {
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Direction int `json:"direction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.votes.Cast(middleware.GetUserID(c), itemID, req.Direction); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"voted": true})
}

// Rate handles POST /api/items/:id/rating
func (h *VoteHandler) Rate(c *gin.Context) {
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.votes.Rate(middleware.GetUserID(c), itemID, req.Rating); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"rated": true})
}
