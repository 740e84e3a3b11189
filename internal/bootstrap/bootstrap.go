package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courseroom/backend/internal/app/controllers"
	"github.com/courseroom/backend/internal/app/migrations"
	"github.com/courseroom/backend/internal/app/repositories/instructor"
	"github.com/courseroom/backend/internal/app/routes"
	"github.com/courseroom/backend/internal/app/services"
	"github.com/courseroom/backend/internal/config"
	"github.com/courseroom/backend/internal/db"
	"github.com/courseroom/backend/internal/middleware"
	"github.com/courseroom/backend/internal/pkg/logger"
	"github.com/courseroom/backend/internal/seed"
)

// Dependencies holds the wired application components
type Dependencies struct {
	InstructorStore      *instructor.Store
	InstructorService    services.InstructorService
	InstructorController *controllers.InstructorController
}

// LoadConfigAndSetupLogger loads configuration and configures logging
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	// .env is optional; environment variables win over the file either way
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	return cfg, nil
}

// SetupDatabase connects to postgres and applies pending migrations
func SetupDatabase(ctx context.Context, cfg *config.Config, migrationsDir string) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.RunMigrations(ctx, database.Writer, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// BuildDependencies wires repositories, services and controllers
func BuildDependencies(database *db.PostgresDB) *Dependencies {
	engine := instructor.NewPgEngine(database.Writer, database.Reader)
	store := instructor.NewStore(engine, logger.WithField("component", "instructor_store"))
	service := services.NewInstructorService(store)
	controller := controllers.NewInstructorController(service)

	return &Dependencies{
		InstructorStore:      store,
		InstructorService:    service,
		InstructorController: controller,
	}
}

// SeedIfEnabled applies development fixtures when seeding is turned on
func SeedIfEnabled(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	if !cfg.Seed.Enabled {
		return nil
	}
	return seed.Run(ctx, deps.InstructorStore)
}

// SetupRouter configures the gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupRouter(router, deps.InstructorController)

	return router
}
