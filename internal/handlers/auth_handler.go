package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medwatch/internal/responses"
	"medwatch/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login. Every failure mode collapses into the
// same generic 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Message(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			responses.Message(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		responses.ServerError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// SecureVitals handles GET /api/auth/secure-vitals, a token smoke-test
// endpoint open to any authenticated role.
func (h *AuthHandler) SecureVitals(c *gin.Context) {
	c.JSON(http.StatusOK, "You are authorized!")
}
