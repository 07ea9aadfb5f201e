package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kingmrb/post-call-webhook/internal/cart"
	"github.com/kingmrb/post-call-webhook/internal/config"
	"github.com/kingmrb/post-call-webhook/internal/db"
	"github.com/kingmrb/post-call-webhook/internal/llm"
	"github.com/kingmrb/post-call-webhook/internal/logger"
	"github.com/kingmrb/post-call-webhook/internal/middleware"
	"github.com/kingmrb/post-call-webhook/internal/order"
	"github.com/kingmrb/post-call-webhook/internal/pos"
	"github.com/kingmrb/post-call-webhook/internal/webhook"
)

func main() {
	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel, cfg.AppEnv)
	defer log.Sync()

	// ───────────────────────── STORES ─────────────────────────
	var repo order.Repository
	if cfg.DatabaseURL != "" {
		pool, err := db.ConnectPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres init failed", zap.Error(err))
		}
		defer pool.Close()
		repo = order.NewPostgresRepository(pool)
		log.Info("orders persisting to postgres")
	} else {
		repo = order.NewInMemoryRepository()
		log.Warn("DATABASE_URL not set, orders kept in memory")
	}

	var carts cart.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis init failed", zap.Error(err))
		}
		carts = cart.NewRedisStore(rdb, cart.DefaultRetention)
		log.Info("live carts stored in redis", zap.String("addr", cfg.RedisAddr))
	} else {
		carts = cart.NewMemoryStore(cart.DefaultCapacity, cart.DefaultRetention)
	}

	// ───────────────────────── COLLABORATORS ─────────────────────────
	var parser llm.OrderParser
	if cfg.GeminiAPIKey != "" && cfg.GeminiModel != "" {
		parser = llm.NewGeminiClient(cfg.Catalog.Names(), log)
	} else {
		log.Warn("gemini credentials not set, AI-assisted parsing disabled")
	}

	var submitter pos.Submitter
	if cfg.ToastAPIKey != "" && cfg.ToastLocationID != "" {
		submitter = pos.NewToastClient(cfg.ToastAPIKey, cfg.ToastLocationID, cfg.ToastAPIURL, log)
	} else {
		submitter = pos.NewNoop(log)
	}

	// ───────────────────────── SERVICES ─────────────────────────
	assembler := order.NewAssembler(cfg.Catalog, cfg.TaxRate, log)
	service := webhook.NewService(cfg.Catalog, assembler, parser, carts, repo, submitter, log)
	handler := webhook.NewHandler(service, cfg.Schedule, cfg.MainAgentID, cfg.FallbackAgentID, log)

	// ───────────────────────── GIN ─────────────────────────
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Webhook-Secret"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	events := r.Group("/", middleware.WebhookAuth(cfg.WebhookSecret))
	{
		events.POST("/post-call", handler.PostCall)
		events.POST("/live-cart", handler.LiveCart)
	}
	r.GET("/voice", handler.Voice)
	r.GET("/health", handler.Health)

	// ───────────────────────── START ─────────────────────────
	log.Info("webhook server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
