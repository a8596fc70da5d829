package routes

import (
	"github.com/gin-gonic/gin"

	"medwatch/internal/handlers"
	"medwatch/internal/middlewares"
	"medwatch/internal/services"
	"medwatch/internal/utils"
)

type VitalRoutes struct {
	handler *handlers.VitalHandler
}

func NewVitalRoutes(handler *handlers.VitalHandler) *VitalRoutes {
	return &VitalRoutes{handler: handler}
}

func (r *VitalRoutes) RegisterRoutes(router *gin.RouterGroup, tokens utils.TokenConfig) {
	vitals := router.Group("/vitals")
	vitals.Use(middlewares.Authenticate(tokens))
	{
		vitals.GET("", r.handler.List)
		vitals.GET("/:id", r.handler.Get)
		vitals.GET("/patient/:patientId", r.handler.ListByPatient)

		vitals.POST("", middlewares.RequireRoles(services.RoleAdmin), r.handler.Create)
		vitals.PUT("/:id", middlewares.RequireRoles(services.RoleAdmin), r.handler.Update)
		vitals.DELETE("/:id", middlewares.RequireRoles(services.RoleAdmin), r.handler.Delete)
	}
}
