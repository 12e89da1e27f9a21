package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// ItemHandler handles item endpoints.
type ItemHandler struct {
	items *services.ItemService
}

func NewItemHandler(items *services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// List handles GET /api/lists/:id/items?sort=manual|votes|ratings|shuffle
func (h *ItemHandler) List(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	items, err := h.items.List(listID, middleware.GetUserID(c), c.Query("sort"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// Create handles POST /api/lists/:id/items
func (h *ItemHandler) Create(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Create(listID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update handles PUT /api/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Update(itemID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// Delete handles DELETE /api/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.items.Delete(itemID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// Reorder handles PUT /api/lists/:id/items/reorder
func (h *ItemHandler) Reorder(c *gin.Context) {
	listID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ItemIDs []uint `json:"item_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.items.Reorder(listID, middleware.GetUserID(c), req.ItemIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"reordered": true})
}
