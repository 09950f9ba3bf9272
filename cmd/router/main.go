// Intent router service entry point.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/agent"
	"github.com/conversational-intent-router/internal/catalog"
	"github.com/conversational-intent-router/internal/config"
	"github.com/conversational-intent-router/internal/conversation"
	"github.com/conversational-intent-router/internal/scoring"
	"github.com/conversational-intent-router/internal/server"
	"github.com/conversational-intent-router/internal/session"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting Intent Router")

	cfg, err := config.Load(getEnv("ROUTER_CONFIG", "router.yaml"))
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	profile, err := scoring.ProfileByName(cfg.Disambiguation.Profile)
	if err != nil {
		logger.Fatal("Invalid scoring profile", zap.Error(err))
	}

	agentCfg := agent.Config{
		NATSAddress:  cfg.NATS.Address,
		RouteSubject: cfg.NATS.RouteSubject,
		DefaultMode:  conversation.Mode(cfg.Disambiguation.DefaultMode),
		Disambiguation: conversation.Config{
			ConfidenceMin:    cfg.Disambiguation.ConfidenceMin,
			ConfidenceMargin: cfg.Disambiguation.ConfidenceMargin,
			MaxCandidates:    cfg.Disambiguation.MaxCandidates,
			Profile:          profile,
		},
		EnableResultCache: cfg.Disambiguation.EnableResultCache,
	}

	store := newSessionStore(cfg, logger)

	a, err := newAgent(agentCfg, cfg.Catalog, store, logger)
	if err != nil {
		logger.Fatal("Failed to create agent", zap.Error(err))
	}
	if err := a.Start(); err != nil {
		logger.Fatal("Failed to start agent", zap.Error(err))
	}

	router := mux.NewRouter()
	server.NewServer(a, logger).SetupRoutes(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      cors(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", zap.String("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	httpServer.Shutdown(ctx)
	a.Stop()

	logger.Info("Shutdown complete")
}

// newSessionStore picks Redis persistence when configured, process memory
// otherwise.
func newSessionStore(cfg config.Config, logger *zap.Logger) session.Store {
	if cfg.Redis.Address == "" {
		logger.Info("Using in-memory session store")
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
	ttl := time.Duration(cfg.Redis.SessionTTLMinutes) * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, conversations will not survive restarts", zap.Error(err))
	}

	logger.Info("Using Redis session store", zap.String("address", cfg.Redis.Address))
	return session.NewRedisStore(client, ttl, logger)
}

// newAgent builds the agent, swapping in file-based catalogs when paths are
// configured.
func newAgent(agentCfg agent.Config, catCfg config.CatalogConfig, store session.Store, logger *zap.Logger) (*agent.Agent, error) {
	if catCfg.JSONPath == "" && catCfg.TOONPath == "" {
		return agent.New(agentCfg, store, logger)
	}

	jsonCat := catalog.BuiltinJSON
	toonCat, _ := catalog.ParseTOON(catalog.BuiltinTOON)

	if catCfg.JSONPath != "" {
		cat, err := catalog.LoadJSONFile(catCfg.JSONPath)
		if err != nil {
			return nil, err
		}
		jsonCat = cat
	}
	if catCfg.TOONPath != "" {
		cat, warnings, err := catalog.LoadTOONFile(catCfg.TOONPath)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			logger.Warn("Catalog data-quality issue", zap.String("detail", w))
		}
		toonCat = cat
	}

	return agent.NewWithCatalogs(agentCfg, jsonCat, toonCat, store, logger)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
