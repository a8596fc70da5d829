package routes

import (
	"github.com/gin-gonic/gin"

	"medwatch/internal/handlers"
	"medwatch/internal/middlewares"
	"medwatch/internal/services"
	"medwatch/internal/utils"
)

type PatientRoutes struct {
	handler *handlers.PatientHandler
}

func NewPatientRoutes(handler *handlers.PatientHandler) *PatientRoutes {
	return &PatientRoutes{handler: handler}
}

func (r *PatientRoutes) RegisterRoutes(router *gin.RouterGroup, tokens utils.TokenConfig) {
	patients := router.Group("/patients")
	patients.Use(middlewares.Authenticate(tokens))
	{
		// reads are open to both roles
		patients.GET("", r.handler.List)
		patients.GET("/:id", r.handler.Get)

		// writes are admin-only
		patients.POST("", middlewares.RequireRoles(services.RoleAdmin), r.handler.Create)
		patients.PUT("/:id", middlewares.RequireRoles(services.RoleAdmin), r.handler.Update)
		patients.DELETE("/:id", middlewares.RequireRoles(services.RoleAdmin), r.handler.Delete)
	}
}
