package ai

import (
	"context"
	"fmt"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicNarrator is a stub implementation that can be expanded once the SDK is adopted.
type AnthropicNarrator struct{}

// NewAnthropicNarrator constructs a new stub narrator.
func NewAnthropicNarrator(cfg AnthropicConfig) (*AnthropicNarrator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicNarrator{}, nil
}

// Narrate is not yet implemented for Anthropic models.
func (a *AnthropicNarrator) Narrate(ctx context.Context, input ReportInput) (Narrative, error) {
	return Narrative{}, fmt.Errorf("anthropic narrator not implemented")
}
