package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

type CommentHandler struct {
	store storage.Storage
}

func NewCommentHandler(store storage.Storage) *CommentHandler {
	return &CommentHandler{store: store}
}

// Update lets the author edit their own comment.
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	comment, err := h.store.GetComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if comment.UserID != middleware.UserID(c) {
		respondError(c, errForbidden)
		return
	}

	var patch models.CommentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.store.UpdateComment(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete is allowed for the author and for the owner of the memory.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	comment, err := h.store.GetComment(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if comment.UserID != userID {
		memory, err := h.store.GetMemory(ctx, comment.MemoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		if memory.UserID != userID {
			respondError(c, errForbidden)
			return
		}
	}

	if err := h.store.DeleteComment(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
