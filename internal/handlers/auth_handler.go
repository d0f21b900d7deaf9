package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"evergrain-service/internal/models"
	"evergrain-service/internal/store"
)

// AuthHandler implements the single-admin login. Credentials are configured
// via environment; a successful login issues an opaque session token the
// admin routes check through the store.
type AuthHandler struct {
	store    *store.Store
	username string
	password string
}

// NewAuthHandler creates an auth handler with the configured admin
// credentials.
func NewAuthHandler(st *store.Store, username, password string) *AuthHandler {
	return &AuthHandler{store: st, username: username, password: password}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the admin credentials and issues a session token. The
// username comparison is case-insensitive; the password is exact.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("VALIDATION_ERROR", err.Error()))
		return
	}

	if !strings.EqualFold(req.Username, h.username) || req.Password != h.password {
		c.JSON(http.StatusUnauthorized, models.NewErrorResponse("INVALID_CREDENTIALS", "Invalid username or password"))
		return
	}

	token := uuid.New().String()
	if err := h.store.PutSession(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("SESSION_ERROR", "Failed to create admin session"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"token": token},
	})
}

// Logout revokes the current session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("admin_token")
	if token != "" {
		h.store.DeleteSession(c.Request.Context(), token)
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "Logged out"})
}
