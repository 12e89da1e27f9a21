package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/middleware"
	"github.com/listloop/backend/internal/services"
	"github.com/listloop/backend/pkg/response"
)

// CommentHandler handles item comment endpoints.
type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List handles GET /api/items/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	comments, err := h.comments.List(itemID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// Add handles POST /api/items/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	itemID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.Add(itemID, middleware.GetUserID(c), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// Delete handles DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(commentID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
