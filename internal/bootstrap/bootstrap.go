package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekremsevim/studiohub/internal/app/controllers"
	appMigrations "github.com/ekremsevim/studiohub/internal/app/migrations"
	appRepos "github.com/ekremsevim/studiohub/internal/app/repositories"
	appRoutes "github.com/ekremsevim/studiohub/internal/app/routes"
	appServices "github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/config"
	"github.com/ekremsevim/studiohub/internal/db"
	appMiddleware "github.com/ekremsevim/studiohub/internal/middleware"
	pkgAuth "github.com/ekremsevim/studiohub/internal/pkg/auth"
	"github.com/ekremsevim/studiohub/internal/pkg/filestorage"
	"github.com/ekremsevim/studiohub/internal/pkg/helpers"
	"github.com/ekremsevim/studiohub/internal/pkg/logger"
	"github.com/ekremsevim/studiohub/internal/seed"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	AuthService    appServices.AuthService
	ProfileService appServices.ProfileService
	ExploreService appServices.ExploreService
	StudioService  appServices.StudioService
	LessonService  appServices.LessonService
	PostService    appServices.PostService
	MeetingService appServices.MeetingService

	AuthController    *appControllers.AuthController
	ProfileController *appControllers.ProfileController
	ExploreController *appControllers.ExploreController
	StudioController  *appControllers.StudioController
	LessonController  *appControllers.LessonController
	PostController    *appControllers.PostController
	MeetingController *appControllers.MeetingController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		database,
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.TokenRepository,
		deps.Repos.StudioRepository,
		deps.JWTService,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.ProfileRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		lgr,
	)
	deps.ExploreService = appServices.NewExploreService(
		deps.Repos.StudioRepository,
		deps.Repos.LessonRepository,
		deps.Repos.UserRepository,
		lgr,
	)
	deps.StudioService = appServices.NewStudioService(
		database,
		deps.Repos.StudioRepository,
		deps.Repos.LessonRepository,
		deps.Repos.UserRepository,
		deps.Repos.TagRepository,
		deps.FileStorage,
		lgr,
	)
	deps.LessonService = appServices.NewLessonService(
		deps.Repos.LessonRepository,
		deps.Repos.StudioRepository,
		deps.Repos.TagRepository,
		deps.FileStorage,
		lgr,
	)
	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.TagRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		lgr,
	)
	deps.MeetingService = appServices.NewMeetingService(
		database,
		deps.Repos.MeetingRepository,
		deps.Repos.UserRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.ExploreController = appControllers.NewExploreController(deps.ExploreService)
	deps.StudioController = appControllers.NewStudioController(deps.StudioService)
	deps.LessonController = appControllers.NewLessonController(deps.LessonService)
	deps.PostController = appControllers.NewPostController(deps.PostService)
	deps.MeetingController = appControllers.NewMeetingController(deps.MeetingService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.ExploreController,
		deps.StudioController,
		deps.LessonController,
		deps.PostController,
		deps.MeetingController,
		deps.AuthMiddleware,
	)

	return router
}
