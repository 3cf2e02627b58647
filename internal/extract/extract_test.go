package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare object", `{"overallScore": 82, "verdict": "Likely Real"}`},
		{"leading and trailing whitespace", "\n\t  {\"overallScore\": 82, \"verdict\": \"Likely Real\"}  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, jsonText, err := Object(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, 82.0, obj["overallScore"])
			assert.Equal(t, "Likely Real", obj["verdict"])
			assert.JSONEq(t, `{"overallScore": 82, "verdict": "Likely Real"}`, jsonText)
		})
	}
}

func TestObjectFencedBlock(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"overallScore\": 82, \"verdict\": \"Likely Real\"}\n```\nLet me know if you need anything else."

	obj, jsonText, err := Object(raw)
	require.NoError(t, err)
	assert.Equal(t, 82.0, obj["overallScore"])
	assert.JSONEq(t, `{"overallScore": 82, "verdict": "Likely Real"}`, jsonText)
}

func TestObjectBareFence(t *testing.T) {
	raw := "Sure.\n```\n{\"verdict\": \"Uncertain\"}\n```"

	obj, _, err := Object(raw)
	require.NoError(t, err)
	assert.Equal(t, "Uncertain", obj["verdict"])
}

func TestObjectBraceSpan(t *testing.T) {
	raw := `The analysis follows. {"verdict": "Likely Fake", "summary": "fabricated quotes"} Hope that helps.`

	obj, _, err := Object(raw)
	require.NoError(t, err)
	assert.Equal(t, "Likely Fake", obj["verdict"])
}

func TestObjectNoBraces(t *testing.T) {
	raw := "I cannot analyze this."

	_, _, err := Object(raw)
	assert.ErrorIs(t, err, ErrNoObject)
}

func TestObjectEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n"} {
		_, _, err := Object(raw)
		assert.ErrorIs(t, err, ErrNoObject)
	}
}

func TestObjectTopLevelNonObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"array", `[{"verdict": "Likely Real"}]`},
		{"scalar string", `"just a string"`},
		{"scalar number", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Object(tt.raw)
			assert.ErrorIs(t, err, ErrNotObject)
		})
	}
}

func TestObjectMalformedCandidates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated object", `{"verdict": "Likely Real"`},
		{"fence without close around truncated object", "```json\n{\"verdict\": \"Likely Real\""},
		{"braces around non-JSON", "some {not json at all} prose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Object(tt.raw)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoObject) || errors.Is(err, ErrNotObject))
		})
	}
}

// A broken fence must not mask a recoverable brace span later in the text.
func TestObjectFenceFallsThroughToBraceSpan(t *testing.T) {
	raw := "```json\nnot actually json\n```\nBut here: {\"verdict\": \"Uncertain\"}"

	obj, _, err := Object(raw)
	require.NoError(t, err)
	assert.Equal(t, "Uncertain", obj["verdict"])
}
