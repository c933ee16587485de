package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/curiousclaude/backend/agent/contract"
	anthropicx "github.com/curiousclaude/backend/pkg/anthropic"
)

// Config selects models for the two tiers the workflows use: a cheap default
// model for high-volume extraction calls and an advanced model for the
// conversational and synthesis calls. The per-call output budget is chosen by
// each workflow.
type Config struct {
	BaseURL       string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.anthropic.com/v1"`
	APIKey        string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	DefaultModel  string        `envconfig:"DEFAULT_MODEL" split_words:"true" default:"claude-3-haiku-20240307"`
	AdvancedModel string        `envconfig:"ADVANCED_MODEL" split_words:"true" default:"claude-sonnet-4-20250514"`
	Temperature   float32       `envconfig:"TEMPERATURE" split_words:"true" default:"1"`
	Timeout       time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: anthropic api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.DefaultModel) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.AdvancedModel) == "" {
		return fmt.Errorf("%w: advanced model is required", contractx.ErrValidation)
	}
	return nil
}

// DefaultFor returns a client config for the default-tier model with the
// given output budget.
func (c Config) DefaultFor(maxTokens int) anthropicx.Config {
	return c.configFor(c.DefaultModel, maxTokens)
}

// AdvancedFor returns a client config for the advanced-tier model with the
// given output budget.
func (c Config) AdvancedFor(maxTokens int) anthropicx.Config {
	return c.configFor(c.AdvancedModel, maxTokens)
}

func (c Config) configFor(model string, maxTokens int) anthropicx.Config {
	return anthropicx.Config{
		BaseURL:     strings.TrimSpace(c.BaseURL),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(model),
		MaxTokens:   maxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}
