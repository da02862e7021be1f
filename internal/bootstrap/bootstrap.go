package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/eee-uofk/coursehub/internal/app/controllers"
	appMigrations "github.com/eee-uofk/coursehub/internal/app/migrations"
	appRepos "github.com/eee-uofk/coursehub/internal/app/repositories"
	appRoutes "github.com/eee-uofk/coursehub/internal/app/routes"
	appServices "github.com/eee-uofk/coursehub/internal/app/services"
	"github.com/eee-uofk/coursehub/internal/config"
	"github.com/eee-uofk/coursehub/internal/db"
	appMiddleware "github.com/eee-uofk/coursehub/internal/middleware"
	pkgAuth "github.com/eee-uofk/coursehub/internal/pkg/auth"
	"github.com/eee-uofk/coursehub/internal/pkg/cache"
	"github.com/eee-uofk/coursehub/internal/pkg/filestorage"
	"github.com/eee-uofk/coursehub/internal/pkg/helpers"
	"github.com/eee-uofk/coursehub/internal/pkg/logger"
	"github.com/eee-uofk/coursehub/internal/pkg/metrics"
	"github.com/eee-uofk/coursehub/internal/pkg/scheduler"
	"github.com/eee-uofk/coursehub/internal/seed"
)

// uploadsRoute serves files written by the local storage driver
const uploadsRoute = "/uploads"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	FileStorage    filestorage.FileStorage
	Redis          *redis.Client
	Metrics        *metrics.Metrics
	Scheduler      *scheduler.Scheduler

	AuthService         appServices.AuthService
	SubjectService      appServices.SubjectService
	ResourceService     appServices.ResourceService
	QuestionService     appServices.QuestionService
	AnnouncementService appServices.AnnouncementService
	ReactionService     appServices.ReactionService
	StatisticsService   appServices.StatisticsService
	OrderingService     appServices.OrderingService
	HealthService       appServices.HealthService

	Controllers appRoutes.Controllers
	Logger      zerolog.Logger

	closers []func() error
}

// Close releases the storage client and the redis connection
func (d *Dependencies) Close() error {
	var errs error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = errors.Join(errs, d.closers[i]())
	}
	return errs
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.EqualFold(cfg.Logging.Format, "text")
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(database.Pool)
	admin := seed.Admin{Username: cfg.Admin.Username, Password: cfg.Admin.Password}
	if err := seed.CreateDefaultData(ctx, repos.UserRepository, repos.SubjectRepository, admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes storage, cache, repositories, services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database.Pool)

	storage, closeStorage, err := newFileStorage(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage
	if closeStorage != nil {
		deps.closers = append(deps.closers, closeStorage)
	}

	statsOpts := appServices.StatisticsOptions{}
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
		statsOpts.Metrics = deps.Metrics
	}

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = deps.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.Redis = client
		deps.closers = append(deps.closers, client.Close)

		statsOpts.Cache = cache.NewJSONCache(client)
		statsOpts.CacheTTL = helpers.ParseDuration(cfg.Redis.OverallCacheTTL, 5*time.Minute)
		statsOpts.Locker = cache.NewLocker(client, helpers.ParseDuration(cfg.Redis.SyncLockTTL, 10*time.Minute))
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache and sync lock enabled")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 168*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	maxUpload := int64(cfg.Storage.MaxUploadSizeMB) << 20
	repos := deps.Repos

	deps.StatisticsService = appServices.NewStatisticsService(
		repos.SubjectRepository,
		repos.ResourceRepository,
		repos.QuestionRepository,
		repos.StatisticsRepository,
		statsOpts,
		logger.Component("statistics"),
	)
	deps.AuthService = appServices.NewAuthService(repos.UserRepository, deps.JWTService, logger.Component("auth"))
	deps.SubjectService = appServices.NewSubjectService(repos.SubjectRepository, repos.ResourceRepository, repos.StatisticsRepository, deps.StatisticsService, logger.Component("subjects"))
	deps.ResourceService = appServices.NewResourceService(repos.ResourceRepository, repos.SubjectRepository, storage, deps.StatisticsService, maxUpload, logger.Component("resources"))
	deps.QuestionService = appServices.NewQuestionService(repos.QuestionRepository, repos.SubjectRepository, storage, deps.StatisticsService, maxUpload, logger.Component("questions"))
	deps.AnnouncementService = appServices.NewAnnouncementService(repos.AnnouncementRepository, logger.Component("announcements"))
	deps.ReactionService = appServices.NewReactionService(repos.ReactionRepository, repos.AnnouncementRepository, deps.Metrics, logger.Component("reactions"))
	deps.OrderingService = appServices.NewOrderingService(repos.ResourceRepository, logger.Component("ordering"))
	deps.HealthService = appServices.NewHealthService(repos.HealthRepository)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService),
		Subject:      appControllers.NewSubjectController(deps.SubjectService),
		Resource:     appControllers.NewResourceController(deps.ResourceService, deps.OrderingService),
		Question:     appControllers.NewQuestionController(deps.QuestionService),
		Announcement: appControllers.NewAnnouncementController(deps.AnnouncementService, deps.ReactionService),
		Statistics:   appControllers.NewStatisticsController(deps.StatisticsService),
		Health:       appControllers.NewHealthController(deps.HealthService),
	}

	if cfg.Statistics.SyncSchedule != "" {
		deps.Scheduler = scheduler.New(lgr)
		timeout := helpers.ParseDuration(cfg.Statistics.SyncTimeout, 5*time.Minute)
		syncJob := func(ctx context.Context) error {
			report, err := deps.StatisticsService.Sync(ctx)
			if err != nil {
				return err
			}
			lgr.Info().Int("count", report.Count).Int("failed", len(report.Failed)).Msg("Scheduled statistics sync finished")
			return nil
		}
		if err := deps.Scheduler.Add(cfg.Statistics.SyncSchedule, "statistics-sync", timeout, syncJob); err != nil {
			_ = deps.Close()
			return nil, fmt.Errorf("failed to schedule statistics sync: %w", err)
		}
	}

	return deps, nil
}

// newFileStorage selects the storage driver. The returned closer may be nil.
func newFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, func() error, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverGCS:
		gcs, err := filestorage.NewGCSStorage(ctx, filestorage.GCSConfig{
			Bucket:          cfg.Storage.GCSBucket,
			CredentialsFile: cfg.Storage.GCSCredentialsFile,
			PublicBaseURL:   cfg.Storage.GCSPublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return gcs, gcs.Close, nil
	case config.StorageDriverLocal:
		baseURL := strings.TrimRight(cfg.Server.PublicBaseURL, "/") + uploadsRoute
		local, err := filestorage.NewLocalStorage(cfg.Storage.LocalPath, baseURL)
		if err != nil {
			return nil, nil, err
		}
		return local, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// corsConfig builds the CORS policy from the configured origin list
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", appMiddleware.RequestIDHeader}
	c.ExposeHeaders = []string{appMiddleware.RequestIDHeader}
	c.MaxAge = 12 * time.Hour

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidatorTagNames()

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component("http")))
	router.Use(cors.New(corsConfig(cfg)))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	if cfg.Storage.Driver == config.StorageDriverLocal {
		router.Static(uploadsRoute, cfg.Storage.LocalPath)
		lgr.Info().Str("path", cfg.Storage.LocalPath).Msg("Static file serving configured for uploads directory")
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
