package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medwatch/internal/handlers"
	"medwatch/internal/utils"
)

func RegisterRoutes(
	router *gin.Engine,
	tokens utils.TokenConfig,
	authHandler *handlers.AuthHandler,
	patientHandler *handlers.PatientHandler,
	deviceHandler *handlers.DeviceHandler,
	vitalHandler *handlers.VitalHandler,
) {
	api := router.Group("/api")

	NewAuthRoutes(authHandler).RegisterRoutes(api, tokens)
	NewPatientRoutes(patientHandler).RegisterRoutes(api, tokens)
	NewDeviceRoutes(deviceHandler).RegisterRoutes(api, tokens)
	NewVitalRoutes(vitalHandler).RegisterRoutes(api, tokens)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
