package prompts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/talent-hub/internal/schemas"
	"go.uber.org/zap"
)

// DefaultPath is the prompt configuration file name looked up next to the binary.
const DefaultPath = "prompt.json"

// Config holds the prompt settings for candidate summaries. It is loaded once at
// startup and must not be modified afterwards.
type Config struct {
	SystemInstruction SystemInstruction `json:"system_instruction"`
}

// SystemInstruction describes who the model is acting as and how it should write.
type SystemInstruction struct {
	Role       string     `json:"role"`
	Task       string     `json:"task"`
	Tone       string     `json:"tone"`
	StyleGuide StyleGuide `json:"style_guide"`
}

// StyleGuide holds a verbatim example and an ordered list of requirements.
type StyleGuide struct {
	Example      string   `json:"example"`
	Requirements []string `json:"requirements"`
}

// ConfigError reports why the prompt configuration could not be loaded.
type ConfigError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prompt config %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("prompt config %s: %s", e.Path, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ResolvePath returns path unchanged when absolute; relative paths are resolved
// against the directory of the running executable, not the working directory.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	if filepath.IsAbs(path) {
		return path, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), path), nil
}

// Load reads, validates and decodes the prompt configuration.
func Load(path string) (*Config, error) {
	absPath, err := ResolvePath(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "cannot resolve path", Cause: err}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &ConfigError{Path: absPath, Message: "cannot read file", Cause: err}
	}

	if err := schemas.ValidatePromptConfig(data); err != nil {
		return nil, &ConfigError{Path: absPath, Message: "invalid document", Cause: err}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: absPath, Message: "cannot decode document", Cause: err}
	}

	return &cfg, nil
}

// LoadOrNil is Load for process startup: on any failure it logs and returns nil,
// which callers treat as "summaries unavailable".
func LoadOrNil(log *zap.Logger, path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Error("prompt config unavailable, summaries disabled", zap.Error(err))
		return nil
	}
	log.Info("prompt config loaded",
		zap.String("role", cfg.SystemInstruction.Role),
		zap.Int("requirements", len(cfg.SystemInstruction.StyleGuide.Requirements)),
	)
	return cfg
}
