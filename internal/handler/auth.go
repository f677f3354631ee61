package handler

import (
	"net/http"

	"ojt-tracker/internal/logger"
	"ojt-tracker/internal/middleware"
	"ojt-tracker/internal/model"
	"ojt-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *service.AuthService
	secret []byte
}

func NewAuthHandler(auth *service.AuthService, secret []byte) *AuthHandler {
	return &AuthHandler{auth: auth, secret: secret}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login.failed", "email", req.Email)
		writeServiceError(c, err)
		return
	}

	logger.Info("login.ok", "uid", u.ID)

	token, err := middleware.IssueToken(h.secret, u.ID, u.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: *u})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FullName, req.Program)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	logger.Info("register.ok", "uid", u.ID, "email", u.Email)
	c.JSON(http.StatusCreated, u)
}

// Logout exists for the client's sign-out flow; tokens are stateless so
// the discard happens client-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.auth.CurrentUser(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req model.PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	if err := h.auth.UpdatePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(c, err)
		return
	}
	logger.Info("password.updated", "uid", uid)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	p, err := h.auth.GetProfile(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req model.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, err := h.auth.UpdateProfile(c.Request.Context(), c.GetInt("user_id"), req.FullName, req.Program, req.Theme)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
