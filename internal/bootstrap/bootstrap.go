package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/messdesk/internal/app/controllers"
	appMigrations "github.com/yigit/messdesk/internal/app/migrations"
	appRepos "github.com/yigit/messdesk/internal/app/repositories"
	"github.com/yigit/messdesk/internal/app/repositories/memory"
	appRoutes "github.com/yigit/messdesk/internal/app/routes"
	appServices "github.com/yigit/messdesk/internal/app/services"
	"github.com/yigit/messdesk/internal/config"
	"github.com/yigit/messdesk/internal/db"
	appMiddleware "github.com/yigit/messdesk/internal/middleware"
	pkgAuth "github.com/yigit/messdesk/internal/pkg/auth"
	"github.com/yigit/messdesk/internal/pkg/email"
	"github.com/yigit/messdesk/internal/pkg/logger"
	"github.com/yigit/messdesk/internal/pkg/metrics"
	"github.com/yigit/messdesk/internal/pkg/notify"
	"github.com/yigit/messdesk/internal/pkg/validation"
	"github.com/yigit/messdesk/internal/pkg/websocket"
	"github.com/yigit/messdesk/internal/seed"
)

// Storage is the selected persistence backend
type Storage struct {
	Repos  *appRepos.Repositories
	Pinger appControllers.Pinger
	Driver string
	close  func()
}

// Close releases the backend's resources
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage        *Storage
	Services       *appServices.Services
	Handlers       appRoutes.Handlers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Metrics        *metrics.Metrics
	Hub            *websocket.Hub
	Dispatcher     *notify.AsyncDispatcher
	Logger         zerolog.Logger

	stopHub context.CancelFunc
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured backend; postgres gets its migrations applied.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &Storage{
			Repos:  appRepos.NewMemoryRepositories(store),
			Pinger: store,
			Driver: config.DriverMemory,
		}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Storage{
		Repos:  appRepos.NewRepositories(database),
		Pinger: database,
		Driver: config.DriverPostgres,
		close:  database.Close,
	}, nil
}

// buildSinks assembles the notification fan-out from config
func buildSinks(cfg *config.Config, hub *websocket.Hub, directory *appServices.DirectoryService, lgr zerolog.Logger) []notify.Sink {
	sinks := []notify.Sink{notify.NewLogSink(logger.Component("events"))}
	if hub != nil {
		sinks = append(sinks, websocket.NewHubSink(hub))
	}

	smtpConfig := email.SMTPConfig{
		Host:      cfg.Notifications.SMTPHost,
		Port:      cfg.Notifications.SMTPPort,
		Username:  cfg.Notifications.SMTPUsername,
		Password:  cfg.Notifications.SMTPPassword,
		FromName:  cfg.Notifications.FromName,
		FromEmail: cfg.Notifications.FromEmail,
		UseTLS:    cfg.Notifications.SMTPUseTLS,
	}
	if smtpConfig.Configured() {
		mailer := email.NewEmailService(smtpConfig, logger.Component("email"))
		sinks = append(sinks, email.NewNotificationSink(mailer, directory))
	} else {
		lgr.Info().Msg("SMTP not configured, email notifications disabled")
	}
	return sinks
}

// BuildDependencies initializes services, notification plumbing, and controllers.
func BuildDependencies(cfg *config.Config, storage *Storage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Storage: storage, Logger: lgr}

	deps.Metrics = metrics.New()
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	hasher := pkgAuth.NewPasswordHasher(cfg.JWT.BcryptCost)

	var hubCtx context.Context
	hubCtx, deps.stopHub = context.WithCancel(context.Background())
	if cfg.Notifications.WebsocketEnabled {
		deps.Hub = websocket.NewHub(logger.Component("websocket"))
		go deps.Hub.Run(hubCtx)
	}

	recipients := appServices.NewDirectoryService(storage.Repos.Users, storage.Repos.Students, storage.Repos.Supervisors,
		hasher, logger.Component("email"))
	deps.Dispatcher = notify.NewAsyncDispatcher(
		cfg.Notifications.BufferSize,
		logger.Component("notify"),
		buildSinks(cfg, deps.Hub, recipients, lgr),
		notify.WithMetrics(deps.Metrics),
	)
	deps.Dispatcher.Start()

	deps.Services = appServices.New(storage.Repos, appServices.Options{
		Hasher:     hasher,
		JWT:        deps.JWTService,
		Dispatcher: deps.Dispatcher,
		Metrics:    deps.Metrics,
		Logger:     lgr,
	})

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	admin := seed.AdminAccount{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword}
	if err := seed.CreateDefaultData(seedCtx, storage.Repos.Users, deps.Services.Directory, admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.Handlers = appRoutes.Handlers{
		Auth:         appControllers.NewAuthController(deps.Services.Auth, lgr),
		Users:        appControllers.NewUserController(deps.Services.Directory, lgr),
		Assignments:  appControllers.NewAssignmentController(deps.Services.Assignments, lgr),
		Complaints:   appControllers.NewComplaintController(deps.Services.Complaints, lgr),
		MenuRequests: appControllers.NewMenuRequestController(deps.Services.MenuRequests, lgr),
		Health:       appControllers.NewHealthController(storage.Pinger, storage.Driver),
	}
	if deps.Hub != nil {
		deps.Handlers.WebSocket = websocket.NewHandler(deps.Hub, deps.Services.Authz, appMiddleware.GetSession, logger.Component("websocket"))
	}
	if cfg.Metrics.Enabled {
		deps.Handlers.Metrics = deps.Metrics.Handler()
		deps.Handlers.MetricsPath = cfg.Metrics.Path
	}

	return deps, nil
}

// Close drains pending notifications, stops the hub and closes storage.
func (d *Dependencies) Close(ctx context.Context) error {
	var err error
	if d.Dispatcher != nil {
		if err = d.Dispatcher.Close(ctx); err != nil {
			d.Logger.Error().Err(err).Msg("Notification dispatcher did not drain in time")
		}
	}
	if d.stopHub != nil {
		d.stopHub()
	}
	if d.Storage != nil {
		d.Storage.Close()
	}
	return err
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	mode := gin.DebugMode
	if cfg.IsProduction() {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	lgr.Info().Str("ginMode", mode).Msg("Router configured")

	if err := validation.RegisterGinValidators(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validators")
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Recovery(lgr),
		deps.Metrics.Middleware(),
	)
	if len(cfg.Server.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", appMiddleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", appMiddleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	appRoutes.SetupSwagger(router, cfg.Server.PublicHost)
	appRoutes.SetupRouter(router, deps.Handlers, deps.AuthMiddleware)

	return router
}
