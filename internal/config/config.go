package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Environment variables consulted by Load. The admin identity and the API
// key are never written to disk.
const (
	EnvAdminUsername = "HOOKLINE_ADMIN_USERNAME"
	EnvAdminPassword = "HOOKLINE_ADMIN_PASSWORD"
	EnvAPIKey        = "ANTHROPIC_API_KEY"
)

// Config holds application configuration.
type Config struct {
	// TTLDays is the conversation retention window in days.
	TTLDays int `json:"ttl_days"`

	// ScriptCost and HookCost are the credit prices of one generation.
	ScriptCost int `json:"script_cost"`
	HookCost   int `json:"hook_cost"`

	// Model and sampling parameters for the generation gateway.
	Model           string  `json:"model,omitempty"`
	ScriptMaxTokens int     `json:"script_max_tokens,omitempty"`
	HookMaxTokens   int     `json:"hook_max_tokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`

	// ScriptPrompt must contain the {{ANIMAL}} placeholder; HookPrompt must
	// contain {{SCRIPT}}. Empty prompts make the corresponding generation
	// fail before any upstream call.
	ScriptPrompt string `json:"script_prompt,omitempty"`
	HookPrompt   string `json:"hook_prompt,omitempty"`

	// Subjects is the suggestion pool for subject placeholders.
	Subjects []string `json:"subjects,omitempty"`

	// DefaultPassword seeds the shared global password when the ledger
	// document does not exist yet.
	DefaultPassword string `json:"default_password,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// AdminUsername, AdminPassword, and APIKey come from the environment
	// only and are never persisted.
	AdminUsername string `json:"-"`
	AdminPassword string `json:"-"`
	APIKey        string `json:"-"`
}

// DefaultSubjects is the placeholder pool used when no subjects are
// configured.
var DefaultSubjects = []string{
	"panda", "shark", "koala", "elephant", "giraffe",
	"lion", "tiger", "bear", "wolf", "cat",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TTLDays:         7,
		ScriptCost:      1,
		HookCost:        1,
		Model:           "claude-sonnet-4-20250514",
		ScriptMaxTokens: 6500,
		HookMaxTokens:   2500,
		Temperature:     0.7,
	}
}

// TTL returns the retention window as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}

// Load loads configuration from baseDir/config.json, applies defaults for
// missing values, then overlays environment-provided credentials.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.hookline.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	merged.applyEnv()
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for non-zero scalars; slices replace when
// the overlay provides them.
func Merge(base, overlay *Config) *Config {
	result := *base

	if overlay.TTLDays != 0 {
		result.TTLDays = overlay.TTLDays
	}
	if overlay.ScriptCost != 0 {
		result.ScriptCost = overlay.ScriptCost
	}
	if overlay.HookCost != 0 {
		result.HookCost = overlay.HookCost
	}
	if overlay.Model != "" {
		result.Model = overlay.Model
	}
	if overlay.ScriptMaxTokens != 0 {
		result.ScriptMaxTokens = overlay.ScriptMaxTokens
	}
	if overlay.HookMaxTokens != 0 {
		result.HookMaxTokens = overlay.HookMaxTokens
	}
	if overlay.Temperature != 0 {
		result.Temperature = overlay.Temperature
	}
	if overlay.ScriptPrompt != "" {
		result.ScriptPrompt = overlay.ScriptPrompt
	}
	if overlay.HookPrompt != "" {
		result.HookPrompt = overlay.HookPrompt
	}
	if overlay.DefaultPassword != "" {
		result.DefaultPassword = overlay.DefaultPassword
	}
	if len(overlay.Subjects) > 0 {
		result.Subjects = overlay.Subjects
	}
	if len(overlay.DisabledTools) > 0 {
		result.DisabledTools = overlay.DisabledTools
	}

	return &result
}

// applyEnv overlays environment-provided values onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAdminUsername); v != "" {
		c.AdminUsername = v
	}
	if v := os.Getenv(EnvAdminPassword); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
}

// SubjectPool returns the configured subjects, or the default pool when none
// are configured.
func (c *Config) SubjectPool() []string {
	if len(c.Subjects) > 0 {
		return c.Subjects
	}
	return DefaultSubjects
}
