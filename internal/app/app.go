package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "inkpress/internal/controller/http"
	"inkpress/internal/feed"
	"inkpress/internal/repo/persistent"
	"inkpress/internal/usecase"
	"inkpress/pkg/config"
	"inkpress/pkg/jwt"
	"inkpress/pkg/logger"
	"inkpress/pkg/middleware"
	"inkpress/pkg/queue"
	"inkpress/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "inkpress/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	postRepo := persistent.NewPostRepository(db)
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, redisClient, queueClient, log, cfg.DefaultAuthor)
	postHandler := controller.NewPostHandler(postUseCase, log)

	// The static collection is loaded exactly once; a failed load leaves the
	// feed endpoint in an error state instead of crashing the server.
	collection, err := feed.Load(cfg.BlogsFile)
	if err != nil {
		log.Error("Failed to load blog collection from %s: %v", cfg.BlogsFile, err)
		collection = nil
	}
	feedHandler := controller.NewFeedHandler(collection, log)

	authHandler, err := controller.NewAuthHandler(jwtService, cfg.AdminUser, cfg.AdminPassword, log)
	if err != nil {
		log.Error("Failed to initialize auth handler: %v", err)
		panic(err)
	}

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Blog API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	}

	api.POST("/auth/login", authHandler.Login)
	api.GET("/blogs", postHandler.GetBlogs)
	api.GET("/blogs/:slug", postHandler.GetBlog)
	api.GET("/feed", feedHandler.GetFeed)

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(jwtService))
	{
		admin.POST("/blogs", postHandler.CreatePost)
		admin.PUT("/blogs/:id", postHandler.UpdatePost)
		admin.DELETE("/blogs/:id", postHandler.DeletePost)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Blog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Blog service exited")
}
