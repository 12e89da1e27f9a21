package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// InviteHandler handles invite link creation, listing, revocation and the
// public redemption endpoint.
type InviteHandler struct {
	invites *services.InviteService
}

func NewInviteHandler(invites *services.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// Create handles POST /api/lists/:id/invites
func (h *InviteHandler) Create(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	link, err := h.invites.CreateLink(listID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// List handles GET /api/lists/:id/invites
func (h *InviteHandler) List(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	links, err := h.invites.ListLinks(listID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, links)
}

// Delete handles DELETE /api/invites/:id
func (h *InviteHandler) Delete(c *gin.Context) {
	linkID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.invites.DeleteLink(linkID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// Redeem handles POST /api/invites/redeem. The route sits behind the IP rate
// limiter; tokens are capabilities and this is the only endpoint that
// accepts them from outside.
func (h *InviteHandler) Redeem(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	listID, err := h.invites.Redeem(req.Token, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"list_id": listID})
}
