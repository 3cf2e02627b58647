// Package fetcher resolves article URLs to best-effort main-body plain text.
// Scripts, styles, and boilerplate navigation are stripped; output length is
// bounded.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	DefaultTimeout  = 20 * time.Second
	DefaultMaxChars = 20000

	// maxBodyBytes caps how much of a page is read before parsing.
	maxBodyBytes = 4 << 20

	userAgent = "veracity/1.0 (+article credibility analysis)"
)

// skipElements are containers whose text is boilerplate, not article body.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
	"iframe":   true,
	"svg":      true,
}

// Fetcher downloads pages and extracts readable text.
type Fetcher struct {
	client   *http.Client
	maxChars int
}

// New creates a Fetcher with default timeout and length bound.
func New() *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: DefaultTimeout},
		maxChars: DefaultMaxChars,
	}
}

// Extract downloads rawURL and returns its main-body text, whitespace
// collapsed and truncated to the configured bound.
func (f *Fetcher) Extract(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", u.Host, resp.StatusCode)
	}

	text, err := readableText(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", u.Host, err)
	}
	if text == "" {
		return "", errors.New("page contained no readable text")
	}
	if len(text) > f.maxChars {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := f.maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, nil
}

// readableText walks the token stream collecting text nodes outside of
// skipped containers.
func readableText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)

	var b strings.Builder
	skipDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return collapseWhitespace(b.String()), nil
			}
			return "", z.Err()
		case html.StartTagToken:
			name, _ := z.TagName()
			if skipElements[string(name)] {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skipElements[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(z.Text()))
			if text != "" {
				b.WriteString(text)
				b.WriteByte(' ')
			}
		}
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
