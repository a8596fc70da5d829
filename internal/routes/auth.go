package routes

import (
	"github.com/gin-gonic/gin"

	"medwatch/internal/handlers"
	"medwatch/internal/middlewares"
	"medwatch/internal/utils"
)

type AuthRoutes struct {
	handler *handlers.AuthHandler
}

func NewAuthRoutes(handler *handlers.AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler}
}

func (r *AuthRoutes) RegisterRoutes(router *gin.RouterGroup, tokens utils.TokenConfig) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
		auth.GET("/secure-vitals", middlewares.Authenticate(tokens), r.handler.SecureVitals)
	}
}
