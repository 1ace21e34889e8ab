package models

import (
	"time"
)

type User struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password    string    `json:"-" gorm:"not null;size:255"`
	DisplayName string    `json:"displayName" gorm:"not null;size:100"`
	Bio         string    `json:"bio" gorm:"type:text"`
	AvatarURL   string    `json:"avatarUrl" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUser holds the fields a client may set on registration. Password must
// already be hashed.
type NewUser struct {
	Username    string
	Password    string
	DisplayName string
	Bio         string
	AvatarURL   string
}

type UserPatch struct {
	DisplayName *string `json:"displayName" binding:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio" binding:"omitempty,max=2000"`
	AvatarURL   *string `json:"avatarUrl" binding:"omitempty,max=500"`
}

func (p UserPatch) Apply(u *User) {
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}
