package routes

import (
	"github.com/gin-gonic/gin"

	"medwatch/internal/handlers"
	"medwatch/internal/middlewares"
	"medwatch/internal/services"
	"medwatch/internal/utils"
)

type DeviceRoutes struct {
	handler *handlers.DeviceHandler
}

func NewDeviceRoutes(handler *handlers.DeviceHandler) *DeviceRoutes {
	return &DeviceRoutes{handler: handler}
}

func (r *DeviceRoutes) RegisterRoutes(router *gin.RouterGroup, tokens utils.TokenConfig) {
	devices := router.Group("/medicaldevices")
	devices.Use(middlewares.Authenticate(tokens))
	{
		devices.GET("", r.handler.List)
		devices.GET("/:id", r.handler.Get)
		devices.GET("/:id/vitals", r.handler.ListVitals)

		devices.POST("", middlewares.RequireRoles(services.RoleAdmin), r.handler.Create)
		devices.PUT("/:id", middlewares.RequireRoles(services.RoleAdmin), r.handler.Update)
		devices.DELETE("/:id", middlewares.RequireRoles(services.RoleAdmin), r.handler.Delete)
	}
}
