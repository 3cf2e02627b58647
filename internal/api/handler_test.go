package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veracity/internal/models"
)

// fakeAnalyzer returns canned results per kind and records the last request.
type fakeAnalyzer struct {
	articleReport *models.ArticleReport
	deepReport    *models.DeepArticleReport
	imageReport   *models.ImageReport
	audioReport   *models.AudioReport
	videoReport   *models.VideoReport
	err           error

	lastArticle models.ArticleRequest
	lastMedia   models.MediaRequest
}

func (f *fakeAnalyzer) AnalyzeArticle(ctx context.Context, req models.ArticleRequest) (*models.ArticleReport, error) {
	f.lastArticle = req
	return f.articleReport, f.err
}

func (f *fakeAnalyzer) AnalyzeArticleDeep(ctx context.Context, req models.ArticleRequest) (*models.DeepArticleReport, error) {
	f.lastArticle = req
	return f.deepReport, f.err
}

func (f *fakeAnalyzer) AnalyzeImage(ctx context.Context, req models.MediaRequest) (*models.ImageReport, error) {
	f.lastMedia = req
	return f.imageReport, f.err
}

func (f *fakeAnalyzer) AnalyzeAudio(ctx context.Context, req models.MediaRequest) (*models.AudioReport, error) {
	f.lastMedia = req
	return f.audioReport, f.err
}

func (f *fakeAnalyzer) AnalyzeVideo(ctx context.Context, req models.MediaRequest) (*models.VideoReport, error) {
	f.lastMedia = req
	return f.videoReport, f.err
}

func setupTestHandler(fake *fakeAnalyzer) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(fake, logger)
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	handler := setupTestHandler(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "ok", response["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	handler := setupTestHandler(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestAnalyzeArticle(t *testing.T) {
	fake := &fakeAnalyzer{
		articleReport: &models.ArticleReport{
			OverallScore: 82,
			Verdict:      models.VerdictLikelyReal,
			Summary:      "Consistent with wire reporting.",
			Reasoning:    "Named sources.",
		},
	}
	handler := setupTestHandler(fake)

	w := postJSON(t, handler, "/api/analyze/article", map[string]any{
		"text":     "A short article.",
		"language": "en",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var report models.ArticleReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, 82.0, report.OverallScore)
	assert.Equal(t, models.VerdictLikelyReal, report.Verdict)
	assert.Equal(t, "A short article.", fake.lastArticle.Text)
	assert.Equal(t, "en", fake.lastArticle.Language)
}

func TestAnalyzeArticleDeep(t *testing.T) {
	fake := &fakeAnalyzer{
		deepReport: &models.DeepArticleReport{
			CredibilityRating: 3.5,
			Verdict:           models.VerdictUncertain,
			Summary:           "Mixed.",
			Aspects: []models.AspectAssessment{
				{Aspect: "sourcing", Rating: 4, Commentary: "well cited"},
			},
		},
	}
	handler := setupTestHandler(fake)

	w := postJSON(t, handler, "/api/analyze/article", map[string]any{
		"text":     "A short article.",
		"language": "en",
		"deep":     true,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var report models.DeepArticleReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, 3.5, report.CredibilityRating)
	require.Len(t, report.Aspects, 1)
}

func TestAnalyzeArticleMethodNotAllowed(t *testing.T) {
	handler := setupTestHandler(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/api/analyze/article", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAnalyzeArticleInvalidBody(t *testing.T) {
	handler := setupTestHandler(&fakeAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/article", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		kind       models.ErrorKind
		wantStatus int
	}{
		{models.ErrPrecondition, http.StatusBadRequest},
		{models.ErrModelInvocation, http.StatusBadGateway},
		{models.ErrExtraction, http.StatusBadGateway},
		{models.ErrValidation, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			fake := &fakeAnalyzer{err: &models.AnalysisError{
				Kind:      tt.kind,
				Detail:    "boom",
				RawOutput: "I cannot analyze this.",
			}}
			handler := setupTestHandler(fake)

			w := postJSON(t, handler, "/api/analyze/article", map[string]any{
				"text":     "A short article.",
				"language": "en",
			})

			require.Equal(t, tt.wantStatus, w.Code)

			var response struct {
				Error models.AnalysisError `json:"error"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.kind, response.Error.Kind)
			assert.Equal(t, "boom", response.Error.Detail)
			assert.Equal(t, "I cannot analyze this.", response.Error.RawOutput)
		})
	}
}

func TestAnalyzeImage(t *testing.T) {
	detected := "GRAND OPENNING"
	fake := &fakeAnalyzer{
		imageReport: &models.ImageReport{
			AuthenticityScore: 24,
			Verdict:           models.VerdictPotentialManipulation,
			Summary:           "Extra fingers.",
			Forensics:         "Six fingers on the left hand.",
			DetectedText:      &detected,
		},
	}
	handler := setupTestHandler(fake)

	jpegBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}
	w := postJSON(t, handler, "/api/analyze/image", map[string]any{
		"data":      base64.StdEncoding.EncodeToString(jpegBytes),
		"mime_type": "image/jpeg",
		"language":  "en",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var report models.ImageReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, models.VerdictPotentialManipulation, report.Verdict)
	require.NotNil(t, report.DetectedText)

	assert.Equal(t, jpegBytes, fake.lastMedia.Data)
	assert.Equal(t, "image/jpeg", fake.lastMedia.MIMEType)
}

func TestAnalyzeImageDataURIHint(t *testing.T) {
	fake := &fakeAnalyzer{imageReport: &models.ImageReport{Verdict: models.VerdictLikelyAuthentic}}
	handler := setupTestHandler(fake)

	pngBytes := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	w := postJSON(t, handler, "/api/analyze/image", map[string]any{
		"data":     dataURL,
		"language": "en",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", fake.lastMedia.MIMEType)
	assert.Equal(t, pngBytes, fake.lastMedia.Data)
}

func TestAnalyzeMediaInvalidBase64(t *testing.T) {
	handler := setupTestHandler(&fakeAnalyzer{})

	w := postJSON(t, handler, "/api/analyze/audio", map[string]any{
		"data":      "!!! not base64 !!!",
		"mime_type": "audio/mpeg",
		"language":  "en",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeAudioAndVideoRoutes(t *testing.T) {
	transcript := "Good evening."
	fake := &fakeAnalyzer{
		audioReport: &models.AudioReport{Verdict: models.VerdictLikelyAuthentic, Transcript: &transcript},
		videoReport: &models.VideoReport{Verdict: models.VerdictUncertain},
	}
	handler := setupTestHandler(fake)

	payload := map[string]any{
		"data":      base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4}),
		"mime_type": "audio/mpeg",
		"language":  "en",
	}

	w := postJSON(t, handler, "/api/analyze/audio", payload)
	require.Equal(t, http.StatusOK, w.Code)
	var audio models.AudioReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&audio))
	require.NotNil(t, audio.Transcript)
	assert.Equal(t, "Good evening.", *audio.Transcript)

	payload["mime_type"] = "video/mp4"
	w = postJSON(t, handler, "/api/analyze/video", payload)
	require.Equal(t, http.StatusOK, w.Code)
	var video models.VideoReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&video))
	assert.Equal(t, models.VerdictUncertain, video.Verdict)
}
