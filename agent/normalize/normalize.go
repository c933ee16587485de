// Package normalize recovers a structured value from a model's free-text
// reply, which may be wrapped in prose, markdown fences, or carry minor
// formatting glitches. It never invents default content; callers own their
// fallback path.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/curiousclaude/backend/agent/contract"
)

// Some models emit irregular spacing between a closing quote, the colon and
// the next opening quote. Narrow repair, nothing else is touched.
var quoteGap = regexp.MustCompile(`"\s*:\s*"`)

// Extract recovers the first complete JSON object from raw and decodes it
// into T. Failures wrap contract.ErrParse.
func Extract[T any](raw string) (T, error) {
	var out T

	span, cleaned, err := ObjectSpan(raw)
	if err != nil {
		logFailure(raw, cleaned)
		return out, err
	}

	repaired := quoteGap.ReplaceAllString(span, `": "`)
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		logFailure(raw, repaired)
		return out, fmt.Errorf("%w: %v", contractx.ErrParse, err)
	}
	return out, nil
}

// ObjectSpan strips markdown fences and returns the first balanced {...}
// span of the remaining text. The second return value is the cleaned text,
// for diagnostics.
func ObjectSpan(raw string) (string, string, error) {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", cleaned, fmt.Errorf("%w: no object found", contractx.ErrParse)
	}

	end := matchBrace(cleaned, start)
	if end < 0 {
		return "", cleaned, fmt.Errorf("%w: unbalanced object", contractx.ErrParse)
	}

	return cleaned[start : end+1], cleaned, nil
}

// matchBrace returns the index of the brace closing the object opened at
// start, tracking string literals and escapes so braces inside values do not
// skew the depth. Returns -1 if the object never closes.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func logFailure(raw, cleaned string) {
	log.Error().
		Str("raw_text", raw).
		Str("cleaned_text", cleaned).
		Msg("failed to parse json from model response")
}
