package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"veracity/internal/analysis"
	"veracity/internal/api"
	"veracity/internal/fetcher"
	"veracity/internal/gemini"
	"veracity/internal/ollama"
	"veracity/pkg/logging"
	"veracity/pkg/tracing"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("veracity service initializing", "version", "1.0.0")

	// Initialize tracing
	tp, err := tracing.InitTracer("veracity")
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized successfully")
	}

	// Get default values from environment variables, with fallbacks
	portDefault := getEnv("PORT", "8080")
	providerDefault := getEnv("MODEL_PROVIDER", "gemini")
	geminiKeyDefault := getEnv("GEMINI_API_KEY", "")
	geminiModelDefault := getEnv("GEMINI_MODEL", gemini.DefaultModel)
	ollamaURLDefault := getEnv("OLLAMA_URL", "http://localhost:11434")
	ollamaModelDefault := getEnv("OLLAMA_MODEL", ollama.DefaultModel)

	var (
		port        = flag.String("port", portDefault, "Server port (env: PORT)")
		provider    = flag.String("provider", providerDefault, "Model provider: gemini or ollama (env: MODEL_PROVIDER)")
		geminiKey   = flag.String("gemini-api-key", geminiKeyDefault, "Gemini API key (env: GEMINI_API_KEY)")
		geminiModel = flag.String("gemini-model", geminiModelDefault, "Gemini model to use (env: GEMINI_MODEL)")
		ollamaURL   = flag.String("ollama-url", ollamaURLDefault, "Ollama API URL (env: OLLAMA_URL)")
		ollamaModel = flag.String("ollama-model", ollamaModelDefault, "Ollama model to use (env: OLLAMA_MODEL)")
	)
	flag.Parse()

	// The model capability is an explicit constructor dependency, never
	// ambient state: tests swap in fakes the same way.
	var gen analysis.Generator
	switch *provider {
	case "ollama":
		client, err := ollama.New(*ollamaURL, *ollamaModel)
		if err != nil {
			logger.Error("failed to initialize Ollama client", "error", err, "ollama_url", *ollamaURL)
			os.Exit(1)
		}
		logger.Info("Ollama client initialized", "model", *ollamaModel, "url", *ollamaURL)
		gen = client
	case "gemini":
		client, err := gemini.New(*geminiKey, *geminiModel)
		if err != nil {
			logger.Error("failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		logger.Info("Gemini client initialized", "model", *geminiModel)
		gen = client
	default:
		logger.Error("unknown model provider", "provider", *provider)
		os.Exit(1)
	}

	svc := analysis.New(gen, fetcher.New())

	// Initialize API handler
	apiHandler := api.NewHandler(svc, logger)

	// Wrap handler with middleware chain: HTTP logging -> tracing -> handlers
	handler := logging.HTTPLoggingMiddleware(logger)(
		tracing.HTTPMiddleware("veracity")(apiHandler),
	)

	// Create server with extended timeouts for model calls on large media
	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 420 * time.Second, // 7 minutes for audio/video analysis
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("veracity service starting",
			"port", *port,
			"provider", *provider,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
