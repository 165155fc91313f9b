package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobmarket/internal/models"
	"jobmarket/internal/services"
)

type AuthHandler struct {
	userService  services.UserService
	authService  services.AuthService
	resetService services.PasswordResetService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, resetService services.PasswordResetService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService, resetService: resetService}
}

// @Summary      Register a new account
// @Description  Creates a user with the given role and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		log.Printf("[auth][register] failed for email=%q: %v", req.Email, err)
		writeServiceError(c, err)
		return
	}

	tokenStr, err := h.authService.IssueToken(user)
	if err != nil {
		log.Printf("[auth][register] sign token failed for userID=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	log.Printf("[auth][register] success userID=%s role=%s", user.ID, user.Role)
	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": tokenStr,
	})
}

// @Summary      Log in
// @Description  Authenticates by email and password and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	user, tokenStr, err := h.authService.Authenticate(email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	log.Printf("[auth][login] success userID=%s took=%s", user.ID, time.Since(start).Truncate(time.Millisecond))
	c.JSON(http.StatusOK, gin.H{
		"user":  user, // PasswordHash is json:"-", it never leaves
		"token": tokenStr,
	})
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := currentUser(c)
	user, err := h.userService.GetByID(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// @Summary      Log out
// @Description  Stateless tokens: the client discards its token, nothing to revoke server-side
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary      Request a password reset
// @Description  Sends a reset token by email when the account exists; the response is identical either way
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/password-reset/request [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.resetService.Request(strings.TrimSpace(req.Email)); err != nil {
		log.Printf("[auth][reset-request] failed for email=%q: %v", req.Email, err)
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset email has been sent"})
}

// @Summary      Confirm a password reset
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.resetService.Confirm(req.Token, req.NewPassword); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
