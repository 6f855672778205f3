package config

import (
	"errors"
	"fmt"
	"strings"

	"syl/internal/llm"

	"github.com/spf13/viper"
)

type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
}

type AnthropicConfig struct {
	APIKey    string `mapstructure:"api_key"`
	URL       string `mapstructure:"url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Version   string `mapstructure:"version"`
}

func Load() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Anthropic.APIKey) == "" {
		return errors.New("ANTHROPIC_API_KEY environment variable is required")
	}
	if c.Anthropic.Model != "" {
		if _, err := llm.ParseModel(c.Anthropic.Model); err != nil {
			return fmt.Errorf("invalid anthropic.model: %w", err)
		}
	}
	if c.Anthropic.MaxTokens < 0 {
		return fmt.Errorf("invalid anthropic.max_tokens: %d", c.Anthropic.MaxTokens)
	}
	return nil
}

// ResolveModel returns the configured model, or the default when unset.
func (c AnthropicConfig) ResolveModel() llm.Model {
	if c.Model == "" {
		return llm.DefaultModel
	}
	model, err := llm.ParseModel(c.Model)
	if err != nil {
		return llm.DefaultModel
	}
	return model
}
