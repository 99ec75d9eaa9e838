// Package config handles the XDG configuration directory, project settings
// and session file paths.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// AppName is the application directory name.
	AppName = "firetask"

	// SettingsFile is the project settings filename.
	SettingsFile = "settings.yaml"

	// SessionFile is the stored session filename.
	SessionFile = "session.json"
)

// Settings holds the backend project configuration, read from settings.yaml
// in the config directory with environment overrides.
type Settings struct {
	// ProjectID is the Google Cloud project hosting the Firestore database.
	ProjectID string `yaml:"project_id" env:"FIRETASK_PROJECT_ID"`

	// APIKey is the Identity Platform web API key used for sign-in.
	APIKey string `yaml:"api_key" env:"FIRETASK_API_KEY"`

	// CredentialsFile optionally points at a service account key for the
	// Firestore client. Empty means application default credentials.
	CredentialsFile string `yaml:"credentials_file" env:"FIRETASK_CREDENTIALS_FILE"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are the loaded project settings.
	Settings Settings
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/firetask or
// $HOME/.config/firetask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadSettings reads settings.yaml, falling back to environment variables
// only when the file does not exist.
func (c *Config) LoadSettings() error {
	if err := cleanenv.ReadConfig(c.SettingsPath(), &c.Settings); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			return cleanenv.ReadEnv(&c.Settings)
		}
		return err
	}
	return nil
}

// SettingsPath returns the path to the project settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasSession checks if the session file exists.
func (c *Config) HasSession() bool {
	_, err := os.Stat(c.SessionPath())
	return err == nil
}
