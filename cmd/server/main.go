package main

import (
	"inkpress/internal/app"
	"inkpress/pkg/cache"
	"inkpress/pkg/config"
	"inkpress/pkg/database"
	"inkpress/pkg/logger"
	"inkpress/pkg/queue"
	"inkpress/pkg/s3"
)

// @title           Inkpress Blog API
// @version         1.0
// @description     Blog publishing service: post CRUD with image uploads plus a searchable static collection.
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	// Redis is optional: without it the service runs with no rate limiting
	// and no post cache.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, continuing without cache: %v", err)
		redisClient = nil
	}

	// RabbitMQ is optional and only used to announce publish transitions.
	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, continuing without events: %v", err)
			queueClient = nil
		}
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
