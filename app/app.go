package app

import (
	"context"
	"fmt"

	"iniva-cms/cache"
	"iniva-cms/config"
	"iniva-cms/handlers"
	"iniva-cms/helper"
	"iniva-cms/middleware"
	"iniva-cms/repositories"
	"iniva-cms/routes"
	"iniva-cms/services"
	"iniva-cms/storage"
	"iniva-cms/transfer"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LocalUploadURL is the path local uploads are served from.
const LocalUploadURL = "/api/uploads"

// App holds the wired services shared by the HTTP server and the CLI.
type App struct {
	DB       *gorm.DB
	Cache    cache.Cache
	Auth     services.AuthService
	Seed     services.SeedService
	Exporter *transfer.Exporter
	Importer *transfer.Importer
	Router   *gin.Engine
}

func New(cfg *config.Config, db *gorm.DB, c cache.Cache, store storage.Storage) *App {
	if c == nil {
		c = cache.NewNoopCache()
	}
	h := helper.NewHTTPHelper()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	hubRepo := repositories.NewHubRepository(db)
	actorRepo := repositories.NewActorRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	postRepo := repositories.NewBlogPostRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize services
	renderer := services.NewContentRenderer()
	authService := services.NewAuthService(userRepo, cfg.JWT())
	hubService := services.NewHubService(hubRepo)
	actorService := services.NewActorService(actorRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, hubRepo, renderer)
	contactService := services.NewContactService(contactRepo, renderer)
	categoryService := services.NewCategoryService(categoryRepo)
	tagService := services.NewTagService(tagRepo)
	postService := services.NewBlogPostService(postRepo, categoryRepo, tagRepo, renderer)
	settingService := services.NewSettingService(settingRepo)
	uploadService := services.NewUploadService(store, cfg.UploadMaxBytes)
	statsService := services.NewStatsService(userRepo, hubRepo, appointmentRepo, contactRepo, postRepo)

	exporter := transfer.NewExporter(db)
	importer := transfer.NewImporter(db)

	localFiles, _ := store.(*storage.LocalStorage)

	// Initialize handlers
	hs := routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, h),
		Hub:         handlers.NewHubHandler(hubService, c, cfg.CacheTTL, h),
		Actor:       handlers.NewActorHandler(actorService, c, cfg.CacheTTL, h),
		Appointment: handlers.NewAppointmentHandler(appointmentService, h),
		Contact:     handlers.NewContactHandler(contactService, h),
		Category:    handlers.NewCategoryHandler(categoryService, h),
		Tag:         handlers.NewTagHandler(tagService, h),
		BlogPost:    handlers.NewBlogPostHandler(postService, c, cfg.CacheTTL, h),
		Setting:     handlers.NewSettingHandler(settingService, h),
		Transfer:    handlers.NewTransferHandler(exporter, importer, cfg.ImportMaxBytes, h),
		Upload:      handlers.NewUploadHandler(uploadService, localFiles, cfg.UploadMaxBytes, h),
		System:      handlers.NewSystemHandler(statsService, h),
	}

	router := routes.NewRouter(hs, routes.Options{
		Tokens:      authService,
		Cache:       c,
		RateLimiter: middleware.NewRateLimiter(cfg.PublicRateLimit),
	})

	return &App{
		DB:       db,
		Cache:    c,
		Auth:     authService,
		Seed:     services.NewSeedService(userRepo, categoryRepo, tagRepo),
		Exporter: exporter,
		Importer: importer,
		Router:   router,
	}
}

// Bootstrap creates the super admin when none exists and, when enabled,
// the default blog categories and tags.
func (a *App) Bootstrap(cfg *config.Config) error {
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := a.Seed.EnsureSuperAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			return fmt.Errorf("ensure super admin: %w", err)
		}
	} else {
		log.Warn().Msg("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping super admin bootstrap")
	}

	if cfg.SeedData {
		created, err := a.Seed.SeedDefaults()
		if err != nil {
			return fmt.Errorf("seed defaults: %w", err)
		}
		log.Info().Int("created", created).Msg("default blog terms seeded")
	}
	return nil
}

// OpenCache connects to Redis when REDIS_URL is set and falls back to a
// no-op cache otherwise.
func OpenCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		return cache.NewNoopCache(), nil
	}
	rc, err := cache.NewRedisCache(cfg.RedisURL, "iniva:", cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return rc, nil
}

// OpenStorage returns the upload store selected by STORAGE_DRIVER.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage.Driver == "minio" {
		ms, err := storage.NewMinIOStorage(ctx, storage.MinIOOptions{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			Bucket:    cfg.Storage.MinioBucket,
			UseSSL:    cfg.Storage.MinioUseSSL,
			PublicURL: cfg.Storage.MinioPublicBase,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	}

	ls, err := storage.NewLocalStorage(cfg.UploadDir, LocalUploadURL)
	if err != nil {
		return nil, err
	}
	return ls, nil
}
