// Package extract recovers a single JSON object from the free-form text a
// generative model returns. Replies arrive as clean JSON, JSON inside a
// fenced code block, JSON surrounded by prose, or no JSON at all.
package extract

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoObject is returned when every extraction strategy has been exhausted.
var ErrNoObject = errors.New("no JSON object found in response")

// ErrNotObject is returned when the reply is valid JSON whose top-level value
// is an array or scalar rather than an object.
var ErrNotObject = errors.New("expected JSON object, response decoded to array or scalar")

// Object locates a JSON object inside raw and decodes it. Strategies run in
// fixed priority order; the first that yields an object wins:
//
//  1. the whole trimmed text
//  2. the interior of a ```json fenced block
//  3. the span from the first '{' to the last '}'
//
// It returns the decoded object together with the exact substring that
// decoded, so callers can unmarshal the same bytes into a typed value.
// Decode failures inside a strategy are swallowed; only exhaustion of all
// strategies surfaces as an error.
func Object(raw string) (map[string]any, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, "", ErrNoObject
	}

	// Strategy 1: the reply is JSON already.
	var whole any
	if err := json.Unmarshal([]byte(trimmed), &whole); err == nil {
		if obj, ok := whole.(map[string]any); ok {
			return obj, trimmed, nil
		}
		return nil, "", ErrNotObject
	}

	// Strategy 2: a ```json fenced block.
	if inner, ok := fencedBlock(trimmed); ok {
		if obj, ok := tryObject(inner); ok {
			return obj, inner, nil
		}
	}

	// Strategy 3: the outermost brace-delimited span. Nested or multiple
	// objects inside prose are not attempted individually.
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		span := trimmed[start : end+1]
		if obj, ok := tryObject(span); ok {
			return obj, span, nil
		}
	}

	return nil, "", ErrNoObject
}

// fencedBlock returns the interior of the first ```json (or bare ```) fence.
func fencedBlock(s string) (string, bool) {
	marker := "```json"
	start := strings.Index(s, marker)
	if start < 0 {
		marker = "```"
		start = strings.Index(s, marker)
	}
	if start < 0 {
		return "", false
	}
	rest := s[start+len(marker):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func tryObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}
