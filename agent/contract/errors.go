package contract

import (
	"errors"
	"strings"
)

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrParse           = errors.New("no parsable json object in model response")
	ErrValidation      = errors.New("validation failed")
	ErrOverloaded      = errors.New("model provider overloaded")
)

// IsOverloaded reports whether err carries the provider's overload signal.
// The upstream client does not expose a typed status, so besides the sentinel
// this matches the 529 status and the "overloaded" error type on the chain.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrOverloaded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "overloaded") || strings.Contains(msg, "529")
}
