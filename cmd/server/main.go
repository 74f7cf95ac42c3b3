package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jagriti-aswal/Communitychat2/internal/cache"
	"github.com/jagriti-aswal/Communitychat2/internal/config"
	"github.com/jagriti-aswal/Communitychat2/internal/domain"
	"github.com/jagriti-aswal/Communitychat2/internal/handler"
	"github.com/jagriti-aswal/Communitychat2/internal/hub"
	"github.com/jagriti-aswal/Communitychat2/internal/relay"
	"github.com/jagriti-aswal/Communitychat2/internal/repository"
	"github.com/jagriti-aswal/Communitychat2/internal/service"
	"github.com/jagriti-aswal/Communitychat2/pkg/database"
	pkglog "github.com/jagriti-aswal/Communitychat2/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: cfg.Log.ServiceName,
	})
	logger := pkglog.L()

	// Connect to database using GORM
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db,
		&domain.MessageModel{},
		&domain.QuestionModel{},
		&domain.CommentModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database migration completed")

	// Initialize repositories
	messageRepo := repository.NewGormMessageRepository(db)
	questionRepo := repository.NewGormQuestionRepository(db)

	// Initialize Redis cache
	boardCache, err := cache.NewRedisBoardCache(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer boardCache.Close()
	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis cache connected")

	// Initialize hub and relay
	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	messageRelay := relay.New(messageRepo, wsHub, boardCache)

	// Initialize services
	chatSvc := service.NewChatService(wsHub, messageRelay, messageRepo, boardCache, cfg.Redis.CacheTTL)
	questionSvc := service.NewQuestionService(questionRepo, boardCache, cfg.Redis.CacheTTL)

	// Initialize handlers
	wsHandler := handler.NewWSHandler(wsHub, chatSvc, cfg.WebSocket)
	httpHandler := handler.NewHandler(chatSvc, questionSvc)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	wsHandler.RegisterRoutes(r)
	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("community chat service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down community chat service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("community chat service stopped")
}
