package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// ListHandler handles list, settings and status endpoints.
type ListHandler struct {
	lists *services.ListService
}

func NewListHandler(lists *services.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// Create handles POST /api/lists
func (h *ListHandler) Create(c *gin.Context) {
	var req services.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	list, err := h.lists.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, list)
}

// Get handles GET /api/lists/:id
func (h *ListHandler) Get(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	list, err := h.lists.Get(listID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Update handles PUT /api/lists/:id
func (h *ListHandler) Update(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	list, err := h.lists.Update(listID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Delete handles DELETE /api/lists/:id
func (h *ListHandler) Delete(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.lists.Delete(listID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// Mine handles GET /api/lists
func (h *ListHandler) Mine(c *gin.Context) {
	lists, err := h.lists.Mine(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, lists)
}

// Shared handles GET /api/lists/shared
func (h *ListHandler) Shared(c *gin.Context) {
	lists, err := h.lists.SharedWith(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, lists)
}

// Public handles GET /api/lists/public
func (h *ListHandler) Public(c *gin.Context) {
	lists, err := h.lists.Public()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, lists)
}

// UpdateSettings handles PUT /api/lists/:id/settings
func (h *ListHandler) UpdateSettings(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	settings, err := h.lists.UpdateSettings(listID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

// Statuses handles GET /api/lists/:id/statuses
func (h *ListHandler) Statuses(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	statuses, err := h.lists.Statuses(listID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, statuses)
}

// CreateStatus handles POST /api/lists/:id/statuses
func (h *ListHandler) CreateStatus(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, err := h.lists.CreateStatus(listID, middleware.GetUserID(c), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, status)
}

// DeleteStatus handles DELETE /api/lists/:id/statuses/:statusID
func (h *ListHandler) DeleteStatus(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	statusID, ok := parseUintParam(c, "statusID")
	if !ok {
		return
	}

	if err := h.lists.DeleteStatus(listID, statusID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
