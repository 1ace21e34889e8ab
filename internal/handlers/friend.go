package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/memorylane/internal/handlers/dto"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

type FriendHandler struct {
	store storage.Storage
}

func NewFriendHandler(store storage.Storage) *FriendHandler {
	return &FriendHandler{store: store}
}

func (h *FriendHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	friends, err := h.store.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.withUsers(c.Request.Context(), userID, friends)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListRequests returns pending requests addressed to the caller.
func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID := middleware.UserID(c)

	requests, err := h.store.ListFriendRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.withUsers(c.Request.Context(), userID, requests)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	var req dto.FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	friend, err := h.store.CreateFriendRequest(c.Request.Context(), middleware.UserID(c), req.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, friend)
}

func (h *FriendHandler) Accept(c *gin.Context) {
	h.resolve(c, h.store.AcceptFriendRequest)
}

func (h *FriendHandler) Reject(c *gin.Context) {
	h.resolve(c, h.store.RejectFriendRequest)
}

// resolve applies fn to the :id request if the caller is its recipient.
func (h *FriendHandler) resolve(c *gin.Context, fn func(context.Context, int64) (*models.Friend, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	request, err := h.store.GetFriend(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if request.FriendID != middleware.UserID(c) {
		respondError(c, errForbidden)
		return
	}

	friend, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, friend)
}

// Remove unfriends, cancels an outgoing request or clears a rejection.
// Either party may do it.
func (h *FriendHandler) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	friend, err := h.store.GetFriend(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !friend.Involves(middleware.UserID(c)) {
		respondError(c, errForbidden)
		return
	}

	if err := h.store.DeleteFriend(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FriendHandler) withUsers(ctx context.Context, userID int64, friends []models.Friend) ([]dto.FriendView, error) {
	views := make([]dto.FriendView, 0, len(friends))
	for _, friend := range friends {
		other, err := h.store.GetUser(ctx, friend.Other(userID))
		if err != nil {
			return nil, err
		}
		views = append(views, dto.FriendView{Friend: friend, User: other})
	}
	return views, nil
}
