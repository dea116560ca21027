// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
// Unknown keys are rejected so typos surface instead of being silently ignored.
type Config struct {
	// Paths
	Assessment string `json:"assessment,omitempty"` // Path to assessment result JSON
	Job        string `json:"job,omitempty"`        // Path to job position JSON
	Corpus     string `json:"corpus,omitempty"`     // Path to learning resource corpus JSON

	// Candidate info
	UserID string `json:"user_id,omitempty"` // User identifier recorded on generated paths

	// Behavior
	APIKey      string `json:"api_key,omitempty"`       // Gemini API key for enhancement
	EmbedAPIKey string `json:"embed_api_key,omitempty"` // Embedding service API key
	DatabaseURL string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`     // Optional Redis URL for the embedding cache L2
	Offline     bool   `json:"offline,omitempty"`       // Use deterministic offline similarity instead of the embedding service
	NoEnhance   bool   `json:"no_enhance,omitempty"`    // Skip the LLM enhancement stage
	Verbose     bool   `json:"verbose,omitempty"`       // Print detailed pipeline output

	// Tuning holds the scoring and selection knobs; zero values fall back to
	// DefaultTuning at merge time.
	Tuning Tuning `json:"tuning,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Offline && c.EmbedAPIKey != "" {
		return fmt.Errorf("config error: 'offline' and 'embed_api_key' are mutually exclusive")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"assessment": c.Assessment,
		"job":        c.Job,
		"corpus":     c.Corpus,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return c.Tuning.Validate()
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Assessment == "" {
		result.Assessment = defaults.Assessment
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Corpus == "" {
		result.Corpus = defaults.Corpus
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbedAPIKey == "" {
		result.EmbedAPIKey = defaults.EmbedAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}

	// Bool fields: true wins (flags can only enable)
	result.Offline = result.Offline || defaults.Offline
	result.NoEnhance = result.NoEnhance || defaults.NoEnhance
	result.Verbose = result.Verbose || defaults.Verbose

	result.Tuning = result.Tuning.MergeWithDefaults(defaults.Tuning)

	return result
}
