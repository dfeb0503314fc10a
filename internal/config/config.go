package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/fmuoria/resumeparser/internal/vocab"
)

// EnvPrefix prefixes every environment variable that overrides a config value
const EnvPrefix = "RESUMEPARSER_"

// Config holds application configuration
type Config struct {
	ListenAddr  string         `json:"listen_addr" yaml:"listen_addr"`
	UploadsDir  string         `json:"uploads_dir" yaml:"uploads_dir"`
	MaxUploadMB int            `json:"max_upload_mb" yaml:"max_upload_mb"`
	LogLevel    string         `json:"log_level" yaml:"log_level"`
	LogFormat   string         `json:"log_format" yaml:"log_format"`
	Headers     []vocab.Header `json:"headers,omitempty" yaml:"headers,omitempty"`
	Skills      []string       `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:  "127.0.0.1:8501",
		UploadsDir:  "uploads",
		MaxUploadMB: 10,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// GetConfigPath returns the path to the configuration file
// On Windows: %APPDATA%/ResumeParser/config.json
// On Unix: ~/.config/ResumeParser/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		// Windows
		configDir = filepath.Join(os.Getenv("APPDATA"), "ResumeParser")
	} else {
		// Unix-like systems
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "ResumeParser")
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFrom loads configuration from a specific path. Files ending in .yaml or
// .yml are parsed as YAML, anything else as JSON.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default config path
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveTo(configPath)
}

// SaveAt saves to path, or to the default config path when path is empty
func (c *Config) SaveAt(path string) error {
	if path == "" {
		return c.Save()
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values with RESUMEPARSER_* environment variables
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvPrefix + "LISTEN_ADDR"); ok {
		c.ListenAddr = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "UPLOADS_DIR"); ok {
		c.UploadsDir = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MAX_UPLOAD_MB"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sMAX_UPLOAD_MB %q: %w", EnvPrefix, v, err)
		}
		c.MaxUploadMB = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "SKILLS"); ok {
		c.Skills = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Skills = append(c.Skills, s)
			}
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return fmt.Errorf("invalid listen_addr %q: %w", c.ListenAddr, err)
	}

	if c.UploadsDir == "" {
		return fmt.Errorf("uploads_dir is required")
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}

	for i, h := range c.Headers {
		if strings.TrimSpace(h.Key) == "" {
			return fmt.Errorf("headers[%d]: key is required", i)
		}
		if len(h.Aliases) == 0 {
			return fmt.Errorf("headers[%d] (%s): at least one alias is required", i, h.Key)
		}
	}

	return nil
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Vocabulary returns the section headers and skills to use, falling back to
// the built-in lists for anything not configured.
func (c *Config) Vocabulary() vocab.Vocabulary {
	return vocab.With(c.Headers, c.Skills)
}
