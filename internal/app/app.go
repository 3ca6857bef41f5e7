package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bashaway_backend/internal/config"
	"bashaway_backend/internal/controller"
	"bashaway_backend/internal/repository"
	"bashaway_backend/internal/service"
	"bashaway_backend/pkg/database"
	"bashaway_backend/pkg/logger"
	"bashaway_backend/pkg/monitoring"
	"bashaway_backend/pkg/security"
	"bashaway_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	question   *repository.QuestionRepository
	submission *repository.SubmissionRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	question   *service.QuestionService
	submission *service.SubmissionService
	score      *service.ScoreService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	question   *controller.QuestionController
	submission *controller.SubmissionController
	score      *controller.ScoreController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig swaps in a freshly loaded config and notifies subscribers.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		question:   repository.NewQuestionRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.score = service.NewScoreService(repos.user, repos.question, rdb)
	s.user = service.NewUserService(repos.user, s.score)
	s.question = service.NewQuestionService(repos.question, repos.submission)
	s.submission = service.NewSubmissionService(repos.submission, repos.question, s.score)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, repos.user),
		user:       controller.NewUserController(s.user),
		question:   controller.NewQuestionController(s.question, s.storage),
		submission: controller.NewSubmissionController(s.submission),
		score:      controller.NewScoreController(s.score),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(ginMode(cfg.Server.Mode))

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("bashaway-server", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Bashaway server successfully started on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
