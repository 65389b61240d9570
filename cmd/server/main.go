package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/urbancanopy/auth-service/internal/auth"
	"github.com/urbancanopy/auth-service/internal/config"
	"github.com/urbancanopy/auth-service/internal/server"
	"github.com/urbancanopy/auth-service/internal/storage"
	"github.com/urbancanopy/auth-service/internal/storage/memory"
	"github.com/urbancanopy/auth-service/internal/storage/postgres"
	"github.com/urbancanopy/auth-service/internal/storage/redisdb"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var store storage.UserStore
	if cfg.DatabaseURL != "" {
		pgStore, err := postgres.NewUserStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("init database", zap.Error(err))
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		logger.Warn("DATABASE_URL not set; using in-memory user store")
		store = memory.NewUserStore()
	}

	var denylist auth.Denylist
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("connect to redis", zap.Error(err))
		}
		defer client.Close()
		denylist = redisdb.NewDenylist(client)
	} else {
		logger.Warn("REDIS_ADDR not set; using in-memory token denylist")
		memList := auth.NewMemoryDenylist()
		defer memList.Close()
		denylist = memList
	}

	srv, err := server.New(cfg, store, denylist, logger)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	go func() {
		logger.Info("auth service listening", zap.String("addr", cfg.HTTPAddress()))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
