package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AIConfig holds settings for the AI analysis integration.
type AIConfig struct {
	// Provider selects the analysis backend: "gemini" or "openrouter".
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Model is the provider-specific model identifier.
	Model string `mapstructure:"model" yaml:"model"`

	// MaxTokens bounds the model's response length.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// GitHubConfig holds settings for the issue ingestion client.
type GitHubConfig struct {
	// TokenFromKeyring controls whether the GitHub token is read from
	// the system keyring when the environment variable is unset.
	TokenFromKeyring bool `mapstructure:"token_from_keyring" yaml:"token_from_keyring"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	AI     AIConfig     `mapstructure:"ai" yaml:"ai"`
	GitHub GitHubConfig `mapstructure:"github" yaml:"github"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/bugboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "bugboard", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		AI: AIConfig{
			Provider:  "gemini",
			Model:     "",
			MaxTokens: 4096,
		},
		GitHub: GitHubConfig{
			TokenFromKeyring: true,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.max_tokens", 4096)
	v.SetDefault("github.token_from_keyring", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("ai", cfg.AI)
	v.Set("github", cfg.GitHub)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
