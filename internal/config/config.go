// Package config loads alarmbook configuration from a YAML file and the
// environment.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/storage"
)

const (
	// FileName is the configuration file name inside the config directory.
	FileName = "config.yaml"
	// LogFileName is the default log file name inside the state directory.
	LogFileName = "alarmbook.log"
	// EnvConfigPath overrides the configuration file location.
	EnvConfigPath = "ALARMBOOK_CONFIG"
)

// ErrConfigExists is returned by WriteDefault when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

type (
	// Config is the complete application configuration.
	Config struct {
		Database Database `yaml:"database"`
		State    State    `yaml:"state"`
		Log      Log      `yaml:"log"`
	}

	// Database configures the SQLite alarm store.
	Database struct {
		Path string `yaml:"path" env:"ALARMBOOK_DATABASE" env-description:"path of the SQLite alarm database"`
	}

	// State configures the view-state store.
	State struct {
		Path string `yaml:"path" env:"ALARMBOOK_STATE" env-description:"directory of the view-state store"`
	}

	// Log configures the log file.
	Log struct {
		File  string `yaml:"file"  env:"ALARMBOOK_LOG_FILE"  env-description:"log file path"`
		Level string `yaml:"level" env:"ALARMBOOK_LOG_LEVEL" env-description:"debug, info, warn or error" env-default:"info"`
	}
)

// DefaultPath returns the configuration file path, honouring ALARMBOOK_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, storage.AppName, FileName)
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, storage.AppName, LogFileName)
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Database: Database{Path: storage.DefaultPath()},
		State:    State{Path: storage.DefaultStatePath()},
		Log:      Log{File: DefaultLogPath(), Level: "info"},
	}
}

// Load reads the configuration file at path, if it exists, then applies
// environment overrides. Missing values fall back to Default.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case path != "" && statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errors.NewUserErrorWithField("config", path,
				"Invalid configuration file",
				fmt.Sprintf("Fix or remove the file: %v", err))
		}
	case path == "" || os.IsNotExist(statErr):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errors.NewSystemErrorWithOp("load_config", "failed to read environment", err)
		}
	default:
		return nil, errors.NewSystemErrorWithOp("load_config", "failed to access config file", statErr)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.State.Path == "" {
		c.State.Path = def.State.Path
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewUserErrorWithField("log.level", c.Log.Level,
			"Unknown log level",
			"Use one of: debug, info, warn, error")
	}
	return nil
}

// Describe returns a help text listing the supported environment variables.
func Describe() string {
	header := "Environment variables:"
	help, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return ""
	}
	return help
}

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		ue := errors.NewUserErrorWithField("config", path,
			"Config file already exists",
			"Pass --force to overwrite it")
		ue.Err = ErrConfigExists
		return ue
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.NewSystemErrorWithOp("write_config", "failed to create config directory", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return errors.NewSystemErrorWithOp("write_config", "failed to encode config", err)
	}
	if err := enc.Close(); err != nil {
		return errors.NewSystemErrorWithOp("write_config", "failed to encode config", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return errors.NewSystemErrorWithOp("write_config", "failed to write config", err)
	}
	return nil
}
