package dto

import (
	"time"

	"github.com/thereayou/memorylane/internal/models"
)

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,username"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
	Bio         string `json:"bio" binding:"max=2000"`
	AvatarURL   string `json:"avatarUrl" binding:"max=500"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User           *models.User `json:"user"`
	Token          string       `json:"token"`
	TokenExpiresAt time.Time    `json:"tokenExpiresAt"`
}
