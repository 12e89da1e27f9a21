package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// PushHandler handles device token registration.
type PushHandler struct {
	push *services.PushService
}

func NewPushHandler(push *services.PushService) *PushHandler {
	return &PushHandler{push: push}
}

// Register handles POST /api/push/register
func (h *PushHandler) Register(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.push.RegisterToken(middleware.GetUserID(c), req.Token, req.Platform); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"registered": true})
}

// Unregister handles POST /api/push/unregister
func (h *PushHandler) Unregister(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.push.RemoveToken(middleware.GetUserID(c), req.Token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unregistered": true})
}
