package models

import (
	"time"
)

type GroupRole string

const (
	GroupRoleAdmin  GroupRole = "admin"
	GroupRoleMember GroupRole = "member"
)

func (r GroupRole) Valid() bool {
	return r == GroupRoleAdmin || r == GroupRoleMember
}

type Group struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	AvatarURL   *string   `json:"avatarUrl" gorm:"size:500"`
	CreatedBy   int64     `json:"createdBy" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
}

type GroupMember struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GroupID  int64     `json:"groupId" gorm:"not null;uniqueIndex:idx_group_members_group_user"`
	UserID   int64     `json:"userId" gorm:"not null;uniqueIndex:idx_group_members_group_user;index"`
	Role     GroupRole `json:"role" gorm:"not null;size:20"`
	JoinedAt time.Time `json:"joinedAt" gorm:"autoCreateTime"`
}

type NewGroup struct {
	Name        string
	Description string
	AvatarURL   *string
	CreatedBy   int64
}

type NewGroupMember struct {
	GroupID int64
	UserID  int64
	Role    GroupRole
}

type GroupPatch struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	AvatarURL   *string `json:"avatarUrl" binding:"omitempty,max=500"`
}

// Apply merges the set fields of p into g. An empty AvatarURL clears it.
func (p GroupPatch) Apply(g *Group) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.AvatarURL != nil {
		if *p.AvatarURL == "" {
			g.AvatarURL = nil
		} else {
			avatar := *p.AvatarURL
			g.AvatarURL = &avatar
		}
	}
}
