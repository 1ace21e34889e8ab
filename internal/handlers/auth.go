package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/memorylane/internal/handlers/dto"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/models"
	"github.com/thereayou/memorylane/internal/session"
	"github.com/thereayou/memorylane/internal/storage"
	"github.com/thereayou/memorylane/pkg/auth"
)

type AuthHandler struct {
	store        storage.Storage
	jwtManager   *auth.JWTManager
	revoker      session.Revoker
	cookieSecure bool
}

func NewAuthHandler(store storage.Storage, jwtMgr *auth.JWTManager, revoker session.Revoker, cookieSecure bool) *AuthHandler {
	return &AuthHandler{store: store, jwtManager: jwtMgr, revoker: revoker, cookieSecure: cookieSecure}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot hash password"})
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), models.NewUser{
		Username:    req.Username,
		Password:    string(hash),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if errors.Is(err, storage.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.startSession(c, http.StatusOK, user)
}

func (h *AuthHandler) startSession(c *gin.Context, status int, user *models.User) {
	token, expiresAt, err := h.jwtManager.Generate(user.ID)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	h.setCookie(c, token, int(time.Until(expiresAt).Seconds()))
	c.JSON(status, dto.AuthResponse{User: user, Token: token, TokenExpiresAt: expiresAt})
}

// Logout revokes the current token until it expires and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken := c.GetString(middleware.TokenKey)

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), rawToken, time.Until(exp)); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke session"})
		return
	}

	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, value, maxAge, "/", "", h.cookieSecure, true)
}
