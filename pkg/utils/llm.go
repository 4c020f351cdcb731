package utils

import (
	"context"
	"io"
	"strings"
)

// CompletionRequest is one system+user prompt exchange that must be answered
// with JSON only.
type CompletionRequest struct {
	SystemPrompt string
	Prompt       string
	Temperature  float32
	MaxTokens    int
}

type LLMClientInterface interface {
	Provider() string
	CompleteJSON(ctx context.Context, req CompletionRequest) (string, error)
}

type TranscriberInterface interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// CleanJSONResponse strips markdown fences and chatter around the first JSON
// object or array in an LLM reply.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if objEnd := findMatchingDelimiter(response, objStart, '{', '}'); objEnd != -1 {
			response = response[objStart : objEnd+1]
		}
	} else if arrStart != -1 {
		if arrEnd := findMatchingDelimiter(response, arrStart, '[', ']'); arrEnd != -1 {
			response = response[arrStart : arrEnd+1]
		}
	}

	return strings.TrimSpace(response)
}

// findMatchingDelimiter returns the index of the delimiter closing the one at
// start, skipping over JSON strings, or -1.
func findMatchingDelimiter(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
