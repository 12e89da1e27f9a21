package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// MemberHandler handles list membership endpoints.
type MemberHandler struct {
	members *services.MemberService
}

func NewMemberHandler(members *services.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// List handles GET /api/lists/:id/members
func (h *MemberHandler) List(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	members, err := h.members.List(listID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

// UpdateRole handles PUT /api/lists/:id/members/:memberID
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseUintParam(c, "memberID")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.members.UpdateRole(listID, memberID, middleware.GetUserID(c), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, member)
}

// Remove handles DELETE /api/lists/:id/members/:memberID
func (h *MemberHandler) Remove(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseUintParam(c, "memberID")
	if !ok {
		return
	}

	if err := h.members.Remove(listID, memberID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// Leave handles POST /api/lists/:id/leave
func (h *MemberHandler) Leave(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.members.Leave(listID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"left": true})
}
