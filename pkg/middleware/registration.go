package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	servertiming "github.com/mitchellh/go-server-timing"
)

// Config holds middleware configuration
type Config struct {
	EnableLogging      bool
	EnableTracing      bool
	EnableServerTiming bool
}

// DefaultConfig returns default middleware configuration
func DefaultConfig() Config {
	return Config{
		EnableLogging:      true,
		EnableTracing:      true,
		EnableServerTiming: true,
	}
}

// RegisterMiddlewares registers all middlewares to the router
func RegisterMiddlewares(router *mux.Router, config Config) {
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return TracingMiddleware("http-request", next)
		})
	}

	// Logging runs inside the tracing span so trace ids are attached
	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}

	if config.EnableServerTiming {
		router.Use(func(next http.Handler) http.Handler {
			return servertiming.Middleware(next, nil)
		})
	}
}
