package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"medwatch/internal/config"
	"medwatch/internal/database"
	"medwatch/internal/handlers"
	"medwatch/internal/repositories"
	"medwatch/internal/routes"
	"medwatch/internal/services"
	"medwatch/internal/simulator"
	"medwatch/internal/utils"
)

// Server bundles everything main needs to run and tear down.
type Server struct {
	HTTP      *http.Server
	Simulator *simulator.Simulator
	Pool      *pgxpool.Pool
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	pool, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	patientRepo := repositories.NewPgPatientRepository(pool)
	deviceRepo := repositories.NewPgDeviceRepository(pool)
	vitalRepo := repositories.NewPgVitalRepository(pool)

	tokens := utils.TokenConfig{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Expiry:   cfg.JWTExpiry(),
	}

	authService := services.NewAuthService(services.NewStaticCredentialVerifier(), tokens)
	patientService := services.NewPatientService(patientRepo)
	deviceService := services.NewDeviceService(deviceRepo, vitalRepo)
	vitalService := services.NewVitalService(vitalRepo, patientRepo, deviceRepo)

	authHandler := handlers.NewAuthHandler(authService)
	patientHandler := handlers.NewPatientHandler(patientService)
	deviceHandler := handlers.NewDeviceHandler(deviceService)
	vitalHandler := handlers.NewVitalHandler(vitalService)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Total-Count", "X-Page-Number", "X-Page-Size", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, tokens, authHandler, patientHandler, deviceHandler, vitalHandler)

	var sim *simulator.Simulator
	if cfg.SimulatorEnabled {
		sim = simulator.New(patientRepo, deviceRepo, vitalRepo, cfg.SimulatorInterval(), log)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return &Server{
		HTTP:      httpServer,
		Simulator: sim,
		Pool:      pool,
	}, nil
}
