package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/attribute"

	"veracity/internal/metrics"
	"veracity/internal/models"
	"veracity/pkg/logging"
	"veracity/pkg/tracing"
)

// Analyzer is the slice of the analysis service the handler consumes.
type Analyzer interface {
	AnalyzeArticle(ctx context.Context, req models.ArticleRequest) (*models.ArticleReport, error)
	AnalyzeArticleDeep(ctx context.Context, req models.ArticleRequest) (*models.DeepArticleReport, error)
	AnalyzeImage(ctx context.Context, req models.MediaRequest) (*models.ImageReport, error)
	AnalyzeAudio(ctx context.Context, req models.MediaRequest) (*models.AudioReport, error)
	AnalyzeVideo(ctx context.Context, req models.MediaRequest) (*models.VideoReport, error)
}

// Handler handles HTTP requests
type Handler struct {
	analyzer Analyzer
	logger   *slog.Logger
	mux      *http.ServeMux
}

// NewHandler creates a new API handler with CORS support and metrics
func NewHandler(analyzer Analyzer, logger *slog.Logger) http.Handler {
	h := &Handler{
		analyzer: analyzer,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	h.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(h.mux)
}

// setupRoutes configures all API routes
func (h *Handler) setupRoutes() {
	h.mux.Handle("/metrics", promhttp.Handler()) // Prometheus metrics endpoint
	h.mux.HandleFunc("/api/analyze/article", h.handleAnalyzeArticle)
	h.mux.HandleFunc("/api/analyze/image", h.handleAnalyzeMedia(models.KindImage))
	h.mux.HandleFunc("/api/analyze/audio", h.handleAnalyzeMedia(models.KindAudio))
	h.mux.HandleFunc("/api/analyze/video", h.handleAnalyzeMedia(models.KindVideo))
	h.mux.HandleFunc("/health", h.handleHealth)
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

type articleRequestBody struct {
	Text     string `json:"text"`
	URL      string `json:"url"`
	Headline string `json:"headline"`
	Language string `json:"language"`
	Deep     bool   `json:"deep"`
}

// handleAnalyzeArticle runs the article flow; "deep" selects the
// multi-aspect report shape.
func (h *Handler) handleAnalyzeArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body articleRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req := models.ArticleRequest{
		Text:     body.Text,
		URL:      body.URL,
		Headline: body.Headline,
		Language: body.Language,
	}

	tracing.SetSpanAttributes(r.Context(),
		attribute.Int("article.text_length", len(body.Text)),
		attribute.Bool("article.deep", body.Deep))

	w.Header().Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	var report any
	var err error
	if body.Deep {
		report, err = h.analyzer.AnalyzeArticleDeep(r.Context(), req)
	} else {
		report, err = h.analyzer.AnalyzeArticle(r.Context(), req)
	}
	h.finish(w, r, models.KindArticle, report, err, time.Since(start))
}

type mediaRequestBody struct {
	// Data is base64, raw or as a data: URI. A data: URI's MIME prefix is
	// honored when mime_type is absent.
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
	Language string `json:"language"`
}

// handleAnalyzeMedia builds the handler for one media content kind.
func (h *Handler) handleAnalyzeMedia(kind models.ContentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body mediaRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		data, hintMIME, err := decodeBase64MaybeDataURL(body.Data)
		if err != nil {
			respondError(w, "Invalid base64 media payload", http.StatusBadRequest)
			return
		}

		req := models.MediaRequest{
			Data:     data,
			MIMEType: pickMIME(body.MIMEType, hintMIME, data),
			Language: body.Language,
		}

		tracing.SetSpanAttributes(r.Context(),
			attribute.String("media.kind", string(kind)),
			attribute.String("media.mime_type", req.MIMEType),
			attribute.Int("media.bytes", len(req.Data)))

		w.Header().Set("X-Request-ID", uuid.NewString())

		start := time.Now()
		var report any
		switch kind {
		case models.KindImage:
			report, err = h.analyzer.AnalyzeImage(r.Context(), req)
		case models.KindAudio:
			report, err = h.analyzer.AnalyzeAudio(r.Context(), req)
		default:
			report, err = h.analyzer.AnalyzeVideo(r.Context(), req)
		}
		h.finish(w, r, kind, report, err, time.Since(start))
	}
}

// finish records metrics and writes either the typed report or the mapped
// analysis error. A result is all-or-nothing: partially-typed reports are
// never rendered.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, kind models.ContentKind, report any, err error, elapsed time.Duration) {
	metrics.AnalysisDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())

	if err != nil {
		var ae *models.AnalysisError
		if !errors.As(err, &ae) {
			metrics.AnalysesTotal.WithLabelValues(string(kind), "internal_error").Inc()
			logging.HTTPErrorLogger(h.logger, http.StatusInternalServerError, err, r)
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		status := statusForError(ae.Kind)
		metrics.AnalysesTotal.WithLabelValues(string(kind), string(ae.Kind)).Inc()
		if status >= 500 {
			logging.HTTPErrorLogger(h.logger, status, ae, r)
		}
		respondJSON(w, map[string]any{"error": ae}, status)
		return
	}

	metrics.AnalysesTotal.WithLabelValues(string(kind), "success").Inc()
	respondJSON(w, report, http.StatusOK)
}

// statusForError maps the error taxonomy onto HTTP statuses: malformed
// requests are the caller's fault, everything downstream is an upstream
// failure.
func statusForError(kind models.ErrorKind) int {
	switch kind {
	case models.ErrPrecondition:
		return http.StatusBadRequest
	case models.ErrModelInvocation, models.ErrExtraction, models.ErrValidation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
