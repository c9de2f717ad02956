package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/senura-medagoda/UniMate-sub005/internal/analytics"
	"github.com/senura-medagoda/UniMate-sub005/internal/cache"
	"github.com/senura-medagoda/UniMate-sub005/internal/config"
	"github.com/senura-medagoda/UniMate-sub005/internal/controller"
	"github.com/senura-medagoda/UniMate-sub005/internal/middleware"
	"github.com/senura-medagoda/UniMate-sub005/internal/rabbit"
	"github.com/senura-medagoda/UniMate-sub005/internal/repository"
	"github.com/senura-medagoda/UniMate-sub005/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	db := client.Database(cfg.MongoDBName)

	// Repository and services
	repo := repository.NewMongoOrderRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		slog.Error("mongo index creation failed", "error", err)
		os.Exit(1)
	}

	orderService := service.NewOrderService(repo)
	trackerService := service.NewTrackerService(repo)
	authService := service.NewAuthService(cfg.AuthURL)

	summaryCache := cache.NewNoop()
	if cfg.RedisAddr != "" {
		summaryCache = cache.NewRedisCache(cfg.RedisAddr, "order-core")
	}
	summarizer := analytics.NewCachedSummarizer(repo, summaryCache, cfg.SummaryTTL)

	// Handlers
	ctl := controller.NewOrderController(orderService, trackerService, summarizer, cfg.StorageTimeout)

	// Router
	r := gin.Default()

	// Public routes
	r.POST("/orders", ctl.PlaceOrder)

	// Protected routes (token required)
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(authService))

	auth.GET("/orders/:orderId", ctl.GetOrder)
	auth.PATCH("/orders/:orderId/status", ctl.UpdateStatus)
	auth.POST("/orders/:orderId/location", ctl.RecordLocation)
	auth.GET("/orders/:orderId/staleness", ctl.GetStaleness)

	// Admin routes
	admin := auth.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/orders", ctl.ListOrders)
	admin.GET("/orders/page", ctl.ListOrdersPage)
	admin.GET("/analytics/summary", ctl.GetSummary)
	admin.DELETE("/orders/:orderId", ctl.DeleteOrder)

	// RabbitMQ connection
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		slog.Error("rabbit connect failed", "error", err)
		os.Exit(1)
	}
	ch, err := conn.Channel()
	if err != nil {
		slog.Error("rabbit channel failed", "error", err)
		os.Exit(1)
	}

	rabbit.SetupConsumers(ch, orderService)

	slog.Info("order core listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
