// Package twincore provides the paylater twin's base HTTP server: config
// parsed from flags with environment fallback, the chi middleware chain,
// structured logging, and JSON response helpers.
package twincore

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Config holds the twin's configuration. Environment variables provide the
// defaults; CLI flags override them.
type Config struct {
	Port          int           `env:"PORT"`
	Latency       time.Duration `env:"PAYLATER_LATENCY"`
	FailRate      float64       `env:"PAYLATER_FAIL_RATE"`
	WebhookURL    string        `env:"PAYLATER_WEBHOOK_URL"`
	WebhookSecret string        `env:"PAYLATER_WEBHOOK_SECRET"`
	SeedFile      string        `env:"PAYLATER_SEED_FILE"`
	Verbose       bool          `env:"PAYLATER_VERBOSE"`
	Name          string        `env:"-"`
}

// ParseFlags builds a Config from the environment and CLI flags.
func ParseFlags(twinName string) (*Config, error) {
	cfg := &Config{Name: twinName}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	flag.DurationVar(&cfg.Latency, "latency", cfg.Latency, "Base simulated latency")
	flag.Float64Var(&cfg.FailRate, "fail-rate", cfg.FailRate, "Random failure rate 0.0-1.0")
	flag.StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "URL to send webhooks to")
	flag.StringVar(&cfg.SeedFile, "seed-file", cfg.SeedFile, "Path to JSON or YAML seed fixture")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable request/response logging")
	flag.Parse()

	if cfg.FailRate < 0 || cfg.FailRate > 1 {
		return nil, fmt.Errorf("fail-rate must be between 0.0 and 1.0, got %v", cfg.FailRate)
	}
	return cfg, nil
}

// Twin is the base server. It wraps a chi router with the common middleware
// stack and owns the process lifecycle.
type Twin struct {
	Config *Config
	Router *chi.Mux
	Logger *slog.Logger
	mw     *Middleware
}

// New creates a Twin with the given config.
func New(cfg *Config) *Twin {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	r := chi.NewRouter()
	mw := NewMiddleware(cfg, logger)

	// Latency and random-failure middleware are always mounted; both check
	// the config value per request, so runtime changes apply immediately.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.CORS)
	r.Use(mw.RequestLog)
	r.Use(mw.LatencyInjection)
	r.Use(mw.RandomFailure)

	return &Twin{
		Config: cfg,
		Router: r,
		Logger: logger,
		mw:     mw,
	}
}

// Middleware returns the middleware instance for fault injection wiring.
func (t *Twin) Middleware() *Middleware {
	return t.mw
}

// Serve starts the HTTP server and blocks until a shutdown signal arrives.
func (t *Twin) Serve() error {
	addr := fmt.Sprintf(":%d", t.Config.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      t.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		t.Logger.Info("starting twin", "name", t.Config.Name, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	t.Logger.Info("shutting down twin", "name", t.Config.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler so Twin can be used directly in tests.
func (t *Twin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.Router.ServeHTTP(w, r)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    http.StatusText(status),
			"code":    status,
		},
	})
}
