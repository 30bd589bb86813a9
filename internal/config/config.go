// Package config loads the optional cvgen YAML configuration. Command-line
// flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cvgen/pkg/session"
)

// Storage backends.
const (
	StorageBadger = session.StorageBadger
	StorageFile   = session.StorageFile
	StorageMemory = session.StorageMemory
)

// AppDir names the per-user directory holding the config and data.
const AppDir = "cvgen"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the on-disk configuration.
type Config struct {
	Storage   string `yaml:"storage"`
	DataDir   string `yaml:"data_dir"`
	Locale    string `yaml:"locale"`
	Template  string `yaml:"template"`
	Color     string `yaml:"color"`
	ExportDir string `yaml:"export_dir"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// TemplatesDir holds page templates that replace bundled ones by name.
	TemplatesDir string `yaml:"templates_dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage:   StorageBadger,
		DataDir:   filepath.Join(baseDir(), "data"),
		Locale:    "id",
		ExportDir: ".",
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "." + AppDir
	}
	return filepath.Join(dir, AppDir)
}

// Load reads path over Default. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageBadger, StorageFile, StorageMemory:
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, c.Storage)
	}
	if c.Storage != StorageMemory && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir is required for %s storage", ErrInvalidConfig, c.Storage)
	}
	return nil
}

// Save writes c as YAML, creating the parent directory.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("config: create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o640)
}
