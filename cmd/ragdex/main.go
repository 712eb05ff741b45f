package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/corpora-cloud/ragdex/internal/config"
	dbRedis "github.com/corpora-cloud/ragdex/internal/db/redis"
	"github.com/corpora-cloud/ragdex/internal/domain"
	logpkg "github.com/corpora-cloud/ragdex/internal/logger"
	"github.com/corpora-cloud/ragdex/internal/metrics"
	budgetrepo "github.com/corpora-cloud/ragdex/internal/repository/budget"
	chromemrepo "github.com/corpora-cloud/ragdex/internal/repository/chromem"
	"github.com/corpora-cloud/ragdex/internal/repository/embcache"
	"github.com/corpora-cloud/ragdex/internal/tenant"
	"github.com/corpora-cloud/ragdex/internal/transport/httpapi"
	openaiEmb "github.com/corpora-cloud/ragdex/internal/transport/openai"
	embeddinguc "github.com/corpora-cloud/ragdex/internal/usecase/embedding"
	healthuc "github.com/corpora-cloud/ragdex/internal/usecase/health"
	ingestuc "github.com/corpora-cloud/ragdex/internal/usecase/ingest"
	retrievaluc "github.com/corpora-cloud/ragdex/internal/usecase/retrieval"
	usageuc "github.com/corpora-cloud/ragdex/internal/usecase/usage"
	"github.com/corpora-cloud/ragdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting ragdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("store_root", cfg.Store.RootPath),
	)

	// Optional key-value cache: embedding cache + budget persistence.
	// Empty addrs runs the server without it.
	ctx := context.Background()
	var cache *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterRetrievalMetrics()

	// Build embedder chain — composition root
	// Take the first vectorizer config
	var vecCfg config.VectorizerConfig
	var provName string
	for _, vc := range cfg.Embedding.Vectorizers {
		vecCfg = vc
		provName = vc.Provider
		break
	}
	provCfg := cfg.Embedding.Providers[provName]

	// Single BudgetTracker shared across all embedders and usage service.
	var budget *embeddinguc.BudgetTracker
	budgetCfg := provCfg.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := embeddinguc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = embeddinguc.BudgetActionReject
		}
		budget = embeddinguc.NewBudgetTracker(
			provName, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		if cache != nil {
			// Connect persistence store — loads current counters from the cache.
			budgetStore := budgetrepo.New(cache, 48*time.Hour, 62*24*time.Hour)
			budget.WithStore(ctx, budgetStore)
		}
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budgetChecker embeddinguc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}

	docEmbedder := buildEmbedder(
		provName, provCfg, vecCfg, vecCfg.DocumentInstruction,
		cache, budgetChecker, logger,
	)
	queryEmbedder := buildEmbedder(
		provName, provCfg, vecCfg, vecCfg.QueryInstruction,
		cache, budgetChecker, logger,
	)
	logger.Info("Embedders created",
		zap.String("provider", provName),
		zap.String("model", vecCfg.Model),
		zap.Int("dimensions", vecCfg.Dimensions),
	)

	// Vector store: one persistent chromem database per tenant path.
	store := chromemrepo.New(cfg.Store.RootPath, cfg.Store.Compress, logger)

	// Create use case services
	retrievalSvc := retrievaluc.New(store, queryEmbedder, logger)
	ingestSvc := ingestuc.New(store, docEmbedder, ingestuc.Config{
		MaxChunkChars: cfg.Ingest.MaxChunkChars,
		Concurrency:   cfg.Ingest.Concurrency,
		MaxRetries:    cfg.Ingest.MaxRetries,
		RetryBase:     time.Duration(cfg.Ingest.RetryBaseMS) * time.Millisecond,
	}, logger)

	// Usage service — reads from shared BudgetTracker
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	usageSvc := usageuc.New(budgetReader)

	// Health service — cache pinger is nil when the cache is not configured.
	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(store, cachePinger, newEmbeddingHealthChecker(queryEmbedder))

	resolver := tenant.NewResolver(cfg.Store.RootPath)

	server := httpapi.NewServer(
		retrievalSvc, ingestSvc, store, usageSvc, healthSvc,
		resolver, cfg.Tenancy.DefaultTenant,
		httpapi.Limits{
			DefaultResults: cfg.Query.DefaultResults,
			MaxResults:     cfg.Query.MaxResults,
		},
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	store.Reset()

	logger.Info("Server stopped gracefully")
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction
func buildEmbedder(
	provName string,
	provCfg config.ProviderConfig,
	vecCfg config.VectorizerConfig,
	instruction string,
	cache *dbRedis.Store,
	budget embeddinguc.BudgetChecker,
	logger *zap.Logger,
) domain.Embedder {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     provCfg.APIKey,
		BaseURL:    provCfg.BaseURL,
		Model:      vecCfg.Model,
		Dimensions: vecCfg.Dimensions,
		Provider:   provName,
		Logger:     logger,
	})

	// Cached
	var embedder domain.Embedder = base
	if cache != nil {
		embedder = embcache.New(base, cache, metrics.EmbeddingCacheTotal, logger)
	}

	// Instrumented (budget + metrics)
	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, provName, vecCfg.Model, budget, logger,
	)

	// Instruction prefix (outermost — cache key includes instruction)
	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}

	return embedder
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
