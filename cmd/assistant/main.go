// Bengali knowledge assistant main entry point
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/bengali-knowledge-assistant/internal/api"
	"github.com/bengali-knowledge-assistant/internal/assistant"
	"github.com/bengali-knowledge-assistant/internal/blob"
	"github.com/bengali-knowledge-assistant/internal/config"
	"github.com/bengali-knowledge-assistant/internal/search"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting Bengali knowledge assistant")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	config.ApplyEnv(&cfg)

	blobs, err := openBlobStore(context.Background(), cfg.Blob)
	if err != nil {
		logger.Fatal("Failed to open blob store", zap.Error(err))
	}
	defer blobs.Close()

	svcCfg := assistant.Config{
		Search: search.Config{
			MinScore:   cfg.Search.MinScore,
			MaxResults: cfg.Search.MaxResults,
			Fuzziness:  cfg.Search.Fuzziness,
		},
		CacheMaxEntries: cfg.Cache.MaxEntries,
		CacheTTL:        cfg.Cache.TTL,
	}

	svc, err := assistant.New(context.Background(), svcCfg, blobs, logger)
	if err != nil {
		logger.Fatal("Failed to create assistant", zap.Error(err))
	}
	defer svc.Close()

	router := api.NewRouter(svc, logger)
	handler := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.CompressHandler(router))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	server.Shutdown(ctx)

	logger.Info("Shutdown complete")
}

func openBlobStore(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	switch cfg.Backend {
	case "memory":
		return blob.NewMemory(), nil
	case "redis":
		return blob.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "bolt", "":
		return blob.NewBolt(cfg.BoltPath)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Backend)
	}
}
