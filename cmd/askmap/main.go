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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/safemap-cloud/askmap/internal/config"
	dbFirestore "github.com/safemap-cloud/askmap/internal/db/firestore"
	dbRedis "github.com/safemap-cloud/askmap/internal/db/redis"
	"github.com/safemap-cloud/askmap/internal/domain"
	logpkg "github.com/safemap-cloud/askmap/internal/logger"
	"github.com/safemap-cloud/askmap/internal/metrics"
	"github.com/safemap-cloud/askmap/internal/repository/embcache"
	markerrepo "github.com/safemap-cloud/askmap/internal/repository/marker"
	reportrepo "github.com/safemap-cloud/askmap/internal/repository/report"
	"github.com/safemap-cloud/askmap/internal/secret"
	chiTransport "github.com/safemap-cloud/askmap/internal/transport/chi"
	openaiTransport "github.com/safemap-cloud/askmap/internal/transport/openai"
	answeruc "github.com/safemap-cloud/askmap/internal/usecase/answer"
	chatuc "github.com/safemap-cloud/askmap/internal/usecase/chat"
	collectuc "github.com/safemap-cloud/askmap/internal/usecase/collect"
	diaguc "github.com/safemap-cloud/askmap/internal/usecase/diag"
	rankuc "github.com/safemap-cloud/askmap/internal/usecase/rank"
	"github.com/safemap-cloud/askmap/internal/version"
)

func main() {
	// .env is optional; real deployments inject variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting askmap API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("firestore_project", cfg.Firestore.ProjectID),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("debug", cfg.Logging.Debug),
	)

	ctx := context.Background()

	fsClient, err := dbFirestore.NewClient(ctx, dbFirestore.Config{
		ProjectID:       cfg.Firestore.ProjectID,
		DatabaseID:      cfg.Firestore.DatabaseID,
		CredentialsFile: cfg.Firestore.CredentialsFile,
	})
	if err != nil {
		logger.Fatal("Failed to create Firestore client", zap.Error(err))
	}
	defer func() { _ = fsClient.Close() }()
	logger.Info("Connected to Firestore")

	// Register model metrics explicitly (no init())
	metrics.RegisterModelMetrics()

	keys := keySource(cfg)

	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		Keys:    keys,
		BaseURL: cfg.Model.BaseURL,
		Model:   cfg.Model.EmbeddingModel,
		Logger:  logger,
	})

	var embedder interface {
		domain.Embedder
		domain.BatchEmbedder
	} = baseEmbedder

	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache")

		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		embedder = embcache.New(baseEmbedder, store, ttl, metrics.EmbeddingCacheTotal, logger)
	}

	completer := openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
		Keys:        keys,
		BaseURL:     cfg.Model.BaseURL,
		Model:       cfg.Model.ChatModel,
		Temperature: cfg.Model.Temperature,
		Logger:      logger,
	})
	logger.Info("Model providers created",
		zap.String("embedding_model", cfg.Model.EmbeddingModel),
		zap.String("chat_model", cfg.Model.ChatModel),
	)

	markers := markerrepo.New(fsClient)
	reports := reportrepo.New(fsClient)

	collectSvc := collectuc.New(markers, reports).WithMaxDocs(cfg.RAG.MaxDocs)
	rankSvc := rankuc.New(embedder, embedder).WithDefaultTopK(cfg.RAG.DefaultTopK)
	answerSvc := answeruc.New(completer)
	chatSvc := chatuc.New(collectSvc, rankSvc, answerSvc, cfg.Firestore.ProjectID)
	diagSvc := diaguc.New(markers, reports, cfg.Firestore.ProjectID)

	server := chiTransport.NewServer(chatSvc, diagSvc, logger, cfg.Logging.Debug)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

	logger.Info("Server stopped gracefully")
}

// keySource picks where the model API key comes from. A key in the config
// wins; otherwise the variable is read per invocation so rotation needs no
// restart.
func keySource(cfg config.Config) secret.Source {
	if cfg.Model.APIKey != "" {
		return secret.Static(cfg.Model.APIKey)
	}
	return secret.Env{Var: "OPENAI_API_KEY"}
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
