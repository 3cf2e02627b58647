// Package analysis drives the request cycle for every content kind: check
// preconditions, build the prompt, invoke the model capability once, then
// recover and validate a typed report from whatever text came back.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"veracity/internal/extract"
	"veracity/internal/models"
	"veracity/internal/schema"
)

// Prompt is the outbound payload for one model invocation.
type Prompt struct {
	// System carries the task instruction and the description of the
	// desired JSON shape.
	System string
	// Text is the user-supplied content, empty for media-only requests.
	Text string
	// Media holds inline media parts with their declared MIME types.
	Media []MediaPart
}

// MediaPart is one inline media attachment.
type MediaPart struct {
	MIMEType string
	Data     []byte
}

// Generator is the remote model capability. It returns the raw reply text,
// which should, but is not guaranteed to, contain a JSON object matching the
// requested shape.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Fetcher resolves a URL to best-effort main-body plain text.
type Fetcher interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Service is the per-content-kind entry point consumed by the presentation
// layer. It holds no mutable state; concurrent invocations share nothing.
type Service struct {
	gen     Generator
	fetcher Fetcher
}

// New creates a Service around a model capability and an article fetcher.
func New(gen Generator, fetcher Fetcher) *Service {
	return &Service{gen: gen, fetcher: fetcher}
}

// AnalyzeArticle produces the flat score-based article report.
func (s *Service) AnalyzeArticle(ctx context.Context, req models.ArticleRequest) (*models.ArticleReport, error) {
	var report models.ArticleReport
	if err := s.runArticle(ctx, req, articleSystemPrompt, articleSchema, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeArticleDeep produces the multi-aspect article report.
func (s *Service) AnalyzeArticleDeep(ctx context.Context, req models.ArticleRequest) (*models.DeepArticleReport, error) {
	var report models.DeepArticleReport
	if err := s.runArticle(ctx, req, deepArticleSystemPrompt, deepArticleSchema, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeImage assesses a single image for AI generation or manipulation.
func (s *Service) AnalyzeImage(ctx context.Context, req models.MediaRequest) (*models.ImageReport, error) {
	var report models.ImageReport
	if err := s.runMedia(ctx, req, imageSystemPrompt, imageSchema, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeAudio assesses an audio clip for voice cloning or manipulation.
func (s *Service) AnalyzeAudio(ctx context.Context, req models.MediaRequest) (*models.AudioReport, error) {
	var report models.AudioReport
	if err := s.runMedia(ctx, req, audioSystemPrompt, audioSchema, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// AnalyzeVideo assesses a video for deepfake or manipulation markers.
func (s *Service) AnalyzeVideo(ctx context.Context, req models.MediaRequest) (*models.VideoReport, error) {
	var report models.VideoReport
	if err := s.runMedia(ctx, req, videoSystemPrompt, videoSchema, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) runArticle(ctx context.Context, req models.ArticleRequest, systemTemplate string, sch schema.Schema, out any) error {
	// Normalize once so the precondition counts and the fetch/prompt path
	// see the same values.
	req.Text = strings.TrimSpace(req.Text)
	req.URL = strings.TrimSpace(req.URL)
	req.Headline = strings.TrimSpace(req.Headline)
	req.Language = strings.TrimSpace(req.Language)

	if err := checkArticleRequest(req); err != nil {
		return err
	}

	text := req.Text
	if req.URL != "" {
		fetched, err := s.fetcher.Extract(ctx, req.URL)
		if err != nil {
			return &models.AnalysisError{
				Kind:   models.ErrModelInvocation,
				Detail: fmt.Sprintf("fetch article from %s: %v", req.URL, err),
			}
		}
		text = fetched
	}

	prompt := Prompt{
		System: fmt.Sprintf(systemTemplate, req.Language),
		Text:   articleUserPrompt(text, req.Headline),
	}
	return s.run(ctx, prompt, sch, out)
}

func (s *Service) runMedia(ctx context.Context, req models.MediaRequest, systemTemplate string, sch schema.Schema, out any) error {
	req.MIMEType = strings.TrimSpace(req.MIMEType)
	req.Language = strings.TrimSpace(req.Language)

	if err := checkMediaRequest(req); err != nil {
		return err
	}

	prompt := Prompt{
		System: fmt.Sprintf(systemTemplate, req.Language),
		Media:  []MediaPart{{MIMEType: req.MIMEType, Data: req.Data}},
	}
	return s.run(ctx, prompt, sch, out)
}

// run performs the single model call and drives extraction then validation.
// The parsed payload is never repaired to force validation through: schema
// drift between the model and the declared contract surfaces as a hard
// validation failure.
func (s *Service) run(ctx context.Context, prompt Prompt, sch schema.Schema, out any) error {
	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return &models.AnalysisError{
			Kind:   models.ErrModelInvocation,
			Detail: err.Error(),
		}
	}

	// A reply that lands after the caller has lost interest is dropped.
	if ctx.Err() != nil {
		return &models.AnalysisError{
			Kind:   models.ErrModelInvocation,
			Detail: ctx.Err().Error(),
		}
	}

	obj, jsonText, err := extract.Object(raw)
	if err != nil {
		return &models.AnalysisError{
			Kind:      models.ErrExtraction,
			Detail:    err.Error(),
			RawOutput: raw,
		}
	}

	if vs := schema.Validate(sch, obj); len(vs) > 0 {
		return &models.AnalysisError{
			Kind:      models.ErrValidation,
			Detail:    vs.String(),
			RawOutput: raw,
		}
	}

	if err := json.Unmarshal([]byte(jsonText), out); err != nil {
		return &models.AnalysisError{
			Kind:      models.ErrValidation,
			Detail:    fmt.Sprintf("decode validated object: %v", err),
			RawOutput: raw,
		}
	}
	return nil
}

// checkArticleRequest expects fields already trimmed by runArticle.
func checkArticleRequest(req models.ArticleRequest) *models.AnalysisError {
	provided := 0
	for _, v := range []string{req.Text, req.URL, req.Headline} {
		if v != "" {
			provided++
		}
	}
	switch {
	case provided == 0:
		return preconditionErr("one of text, url, or headline is required")
	case provided > 1:
		return preconditionErr("text, url, and headline are mutually exclusive")
	case req.Language == "":
		return preconditionErr("language is required")
	}
	return nil
}

// checkMediaRequest expects fields already trimmed by runMedia.
func checkMediaRequest(req models.MediaRequest) *models.AnalysisError {
	switch {
	case len(req.Data) == 0:
		return preconditionErr("media payload is empty")
	case req.MIMEType == "":
		return preconditionErr("media payload does not declare a MIME type")
	case req.Language == "":
		return preconditionErr("language is required")
	}
	return nil
}

func preconditionErr(detail string) *models.AnalysisError {
	return &models.AnalysisError{Kind: models.ErrPrecondition, Detail: detail}
}
