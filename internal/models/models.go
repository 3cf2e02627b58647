package models

// ContentKind identifies what sort of content an analysis request carries.
// It determines the prompt template, the expected report shape, and the
// verdict vocabulary.
type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindImage   ContentKind = "image"
	KindAudio   ContentKind = "audio"
	KindVideo   ContentKind = "video"
)

// ArticleRequest asks for a credibility assessment of a news article.
// Exactly one of Text, URL, or Headline must be non-empty.
type ArticleRequest struct {
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
	Headline string `json:"headline,omitempty"`

	// Language is the ISO 639-1 code the report should be written in.
	Language string `json:"language"`
}

// MediaRequest asks for an authenticity assessment of an image, audio clip,
// or video. Data holds the raw bytes; MIMEType declares what they are.
type MediaRequest struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
	Language string `json:"language"`
}

// Article verdicts.
const (
	VerdictLikelyReal = "Likely Real"
	VerdictLikelyFake = "Likely Fake"
	VerdictUncertain  = "Uncertain"
)

// Media verdicts, shared by image, audio, and video reports. "Uncertain" is
// shared with the article vocabulary.
const (
	VerdictLikelyAuthentic       = "Likely Authentic"
	VerdictPotentialManipulation = "Potential AI/Manipulation"
)

// ArticleReport is the flat, score-based article assessment.
type ArticleReport struct {
	OverallScore float64  `json:"overallScore"` // 0-100, higher means more credible
	Verdict      string   `json:"verdict"`
	Summary      string   `json:"summary"`
	Reasoning    string   `json:"reasoning"`
	Sources      []string `json:"sources,omitempty"` // corroborating source URLs
}

// AspectAssessment rates one dimension of an article (sourcing, tone,
// factual consistency, ...) on a 1.0-5.0 scale.
type AspectAssessment struct {
	Aspect     string  `json:"aspect"`
	Rating     float64 `json:"rating"`
	Commentary string  `json:"commentary"`
}

// DeepArticleReport is the multi-section article assessment with per-aspect
// sub-ratings on a 1.0-5.0 scale.
type DeepArticleReport struct {
	CredibilityRating float64            `json:"credibilityRating"` // 1.0-5.0
	Verdict           string             `json:"verdict"`
	Summary           string             `json:"summary"`
	Aspects           []AspectAssessment `json:"aspects"`
	Sources           []string           `json:"sources,omitempty"`
}

// ImageReport is the authenticity assessment of a single image.
// DetectedText is nil when the model reports no legible in-image text.
type ImageReport struct {
	AuthenticityScore float64 `json:"authenticityScore"` // 0-100, higher means more likely authentic
	Verdict           string  `json:"verdict"`
	Summary           string  `json:"summary"`
	Forensics         string  `json:"forensics"`
	DetectedText      *string `json:"detectedText,omitempty"`
}

// AudioReport is the authenticity assessment of an audio clip.
// Transcript is nil when the model could not transcribe the speech.
type AudioReport struct {
	AuthenticityScore float64 `json:"authenticityScore"`
	Verdict           string  `json:"verdict"`
	Summary           string  `json:"summary"`
	Forensics         string  `json:"forensics"`
	Transcript        *string `json:"transcript,omitempty"`
}

// VideoReport is the authenticity assessment of a video.
type VideoReport struct {
	AuthenticityScore float64 `json:"authenticityScore"`
	Verdict           string  `json:"verdict"`
	Summary           string  `json:"summary"`
	Transcript        *string `json:"transcript,omitempty"`
	Forensics         string  `json:"forensics"`
}

// ErrorKind classifies where in the request cycle an analysis failed.
type ErrorKind string

const (
	// ErrPrecondition means the request was malformed; no model call was made.
	ErrPrecondition ErrorKind = "precondition_failed"
	// ErrModelInvocation means the outbound model call itself failed.
	ErrModelInvocation ErrorKind = "model_invocation_failed"
	// ErrExtraction means no JSON object could be located in the model reply.
	ErrExtraction ErrorKind = "extraction_failed"
	// ErrValidation means a JSON object was found but does not match the
	// declared report shape.
	ErrValidation ErrorKind = "validation_failed"
)

// AnalysisError is the single error type crossing the orchestrator boundary.
// For extraction and validation failures RawOutput preserves the model reply
// verbatim so an operator can diagnose prompt or schema drift.
type AnalysisError struct {
	Kind      ErrorKind `json:"kind"`
	Detail    string    `json:"detail"`
	RawOutput string    `json:"raw_output,omitempty"`
}

func (e *AnalysisError) Error() string {
	return string(e.Kind) + ": " + e.Detail
}
