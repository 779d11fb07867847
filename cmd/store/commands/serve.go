package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/ai-goat-store/internal/docs"
	"github.com/tair/ai-goat-store/internal/migration"
	"github.com/tair/ai-goat-store/internal/product"
	producthttp "github.com/tair/ai-goat-store/internal/product/delivery/http"
	"github.com/tair/ai-goat-store/internal/storage"
	"github.com/tair/ai-goat-store/internal/user"
	userhttp "github.com/tair/ai-goat-store/internal/user/delivery/http"
	"github.com/tair/ai-goat-store/pkg/auth"
	"github.com/tair/ai-goat-store/pkg/logger"
	"github.com/tair/ai-goat-store/pkg/middleware"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Bootstrap the database and buckets, then serve the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting AI Goat Store")

	defer initTracing()()

	db, closeDB, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	if _, err := migration.New(db).Run(ctx); err != nil {
		return err
	}

	store := storage.New(cfg.Storage)
	store.InitializeBuckets(ctx)

	models := newModelService()

	events, closeEvents := newEventPublisher()
	defer closeEvents()

	cache, closeCache := newResponseCache(ctx)
	defer closeCache()

	credentials, err := auth.NewMemoryCredentialStore(auth.DefaultCredentials)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.SecretKey, auth.DefaultTokenTTL)

	productHandler, err := product.InitializeHTTPHandler(db, models, store, events, cache, producthttp.MaxUploadBytes(cfg.MaxUploadBytes))
	if err != nil {
		return err
	}
	userHandler, err := user.InitializeHTTPHandler(db, models, credentials, tokens, events)
	if err != nil {
		return err
	}

	handler := newRouter(userHandler, productHandler, cfg.TracingEnabled)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/").
			Str("model_provider", models.Provider()).
			Bool("cache_enabled", cache.Enabled()).
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newRouter mounts the API, metrics and swagger routes behind CORS
func newRouter(userHandler *userhttp.UserHandler, productHandler *producthttp.ProductHandler, tracingEnabled bool) http.Handler {
	router := mux.NewRouter()

	middlewareConfig := middleware.DefaultConfig()
	middlewareConfig.EnableTracing = tracingEnabled
	middleware.RegisterMiddlewares(router, middlewareConfig)

	userHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())
	producthttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
