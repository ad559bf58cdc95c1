package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *logrus.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database")

	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("schema up to date")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	memberRepo := repository.NewBoardUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	svc := service.New(db, userRepo, workspaceRepo, boardRepo, memberRepo, statusRepo, taskRepo, log)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiryHours)

	// Handlers
	userHandler := handler.NewUserHandler(userRepo, tokens)
	workspaceHandler := handler.NewWorkspaceHandler(svc)
	boardHandler := handler.NewBoardHandler(svc)
	memberHandler := handler.NewMemberHandler(svc)
	statusHandler := handler.NewStatusHandler(svc)
	taskHandler := handler.NewTaskHandler(svc)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Workspace routes
		api.POST("/Workspace", workspaceHandler.Create)
		api.GET("/Workspace", workspaceHandler.GetAll)
		api.DELETE("/Workspace/:id", workspaceHandler.Delete)

		// Board routes
		api.POST("/Board", boardHandler.Create)
		api.GET("/Board", boardHandler.GetAll)
		api.GET("/Board/:id", boardHandler.GetByID)
		api.PUT("/Board/:id", boardHandler.Update)
		api.DELETE("/Board/:id", boardHandler.Delete)

		// Board membership routes
		api.POST("/Board/:id/users", memberHandler.Add)
		api.GET("/Board/:id/users", memberHandler.GetAll)
		api.PUT("/Board/:id/users/:userId", memberHandler.ChangeRole)
		api.DELETE("/Board/:id/users/:userId", memberHandler.Remove)

		// Status routes
		api.GET("/Board/:id/statuses", statusHandler.GetByBoard)
		api.POST("/BoardStatus", statusHandler.Create)
		api.PUT("/BoardStatus/:id", statusHandler.Rename)
		api.DELETE("/BoardStatus/:id", statusHandler.Delete)

		// Task routes
		api.GET("/Task/board/:boardId", taskHandler.GetByBoard)
		api.POST("/Task/board/:boardId", taskHandler.Create)
		api.GET("/Task/:id", taskHandler.GetByID)
		api.PUT("/Task/:id", taskHandler.Update)
		api.DELETE("/Task/:id", taskHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func runMigrations(cfg *config.Config) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	url := fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.WithField("port", s.Config.ServerPort).Info("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.WithError(err).Fatal("failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.WithError(err).Fatal("server forced to shutdown")
	}

	s.Log.Info("server exited properly")
}
