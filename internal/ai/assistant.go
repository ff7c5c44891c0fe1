// Package ai holds the optional language-model helpers. They describe analyses
// for humans and never produce or alter scores.
package ai

import (
	"context"

	"github.com/spigell/smart-hire/internal/render"
)

const ProviderGemini = "gemini"

// Summarizer writes a short recruiter note about an analysis.
type Summarizer interface {
	Summarize(ctx context.Context, m render.DisplayModel) (string, error)
}

// Config stores AI-related configuration.
type Config struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig stores Gemini provider configuration.
type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}
