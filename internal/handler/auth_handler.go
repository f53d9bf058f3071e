package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"relove/internal/service/auth"
	"relove/pkg/utils"
)

// AuthHandler authentication handler
type AuthHandler struct {
	authService auth.AuthService
}

// NewAuthHandler creates an authentication handler
func NewAuthHandler(authService auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register registers a user
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, user)
}

// Login logs in a user
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, tokens)
}

// Logout logs out the authenticated user
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := h.authService.Logout(c.Request.Context(), userID, token); err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, nil)
}

// Refresh issues a fresh access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, tokens)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, user)
}
