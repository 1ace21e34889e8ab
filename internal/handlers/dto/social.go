package dto

import "github.com/thereayou/memorylane/internal/models"

type FriendRequest struct {
	FriendID int64 `json:"friendId" binding:"required,gt=0"`
}

// FriendView pairs a friendship record with the user on the other side.
type FriendView struct {
	models.Friend
	User *models.User `json:"user"`
}

type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=2000"`
	AvatarURL   *string `json:"avatarUrl" binding:"omitempty,max=500"`
}

type AddMemberRequest struct {
	UserID int64            `json:"userId" binding:"required,gt=0"`
	Role   models.GroupRole `json:"role" binding:"omitempty,oneof=admin member"`
}

type UpdateMemberRequest struct {
	Role models.GroupRole `json:"role" binding:"required,oneof=admin member"`
}

type GroupDetail struct {
	*models.Group
	Members []models.GroupMember `json:"members"`
}
