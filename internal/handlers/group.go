package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/memorylane/internal/handlers/dto"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/storage"
)

type GroupHandler struct {
	store storage.Storage
}

func NewGroupHandler(store storage.Storage) *GroupHandler {
	return &GroupHandler{store: store}
}

func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.store.ListGroupsForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	group, err := h.store.CreateGroup(c.Request.Context(), models.NewGroup{
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		CreatedBy:   middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) Get(c *gin.Context) {
	groupID, _, ok := h.member(c, false)
	if !ok {
		return
	}

	group, err := h.store.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	members, err := h.store.ListGroupMembers(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GroupDetail{Group: group, Members: members})
}

func (h *GroupHandler) Update(c *gin.Context) {
	groupID, _, ok := h.member(c, true)
	if !ok {
		return
	}

	var patch models.GroupPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	group, err := h.store.UpdateGroup(c.Request.Context(), groupID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *GroupHandler) Delete(c *gin.Context) {
	groupID, _, ok := h.member(c, true)
	if !ok {
		return
	}

	if err := h.store.DeleteGroup(c.Request.Context(), groupID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GroupHandler) Memories(c *gin.Context) {
	groupID, _, ok := h.member(c, false)
	if !ok {
		return
	}

	memories, err := h.store.GroupMemories(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, memories)
}

func (h *GroupHandler) Members(c *gin.Context) {
	groupID, _, ok := h.member(c, false)
	if !ok {
		return
	}

	members, err := h.store.ListGroupMembers(c.Request.Context(), groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, _, ok := h.member(c, true)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.store.AddGroupMember(c.Request.Context(), models.NewGroupMember{
		GroupID: groupID,
		UserID:  req.UserID,
		Role:    req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *GroupHandler) UpdateMember(c *gin.Context) {
	groupID, _, ok := h.member(c, true)
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.store.UpdateGroupMemberRole(c.Request.Context(), groupID, userID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// RemoveMember is open to admins, and to any member removing themselves.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, caller, ok := h.member(c, false)
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	if userID != caller.UserID && caller.Role != models.GroupRoleAdmin {
		respondError(c, errForbidden)
		return
	}

	if err := h.store.RemoveGroupMember(c.Request.Context(), groupID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// member resolves the :id group and the caller's membership in it. A missing
// group is a 404; a non-member, or a non-admin when admin is set, gets 403.
func (h *GroupHandler) member(c *gin.Context, admin bool) (int64, *models.GroupMember, bool) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return 0, nil, false
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetGroup(ctx, groupID); err != nil {
		respondError(c, err)
		return 0, nil, false
	}

	member, err := h.store.GetGroupMember(ctx, groupID, middleware.UserID(c))
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, errForbidden)
		return 0, nil, false
	}
	if err != nil {
		respondError(c, err)
		return 0, nil, false
	}
	if admin && member.Role != models.GroupRoleAdmin {
		respondError(c, errForbidden)
		return 0, nil, false
	}
	return groupID, member, true
}
