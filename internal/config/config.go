// ABOUTME: Move configuration: server, logging, report files and profile catalog.
// ABOUTME: Loaded with viper from the XDG config file and MOVE_* environment variables.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/move/internal/models"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MOVE_SERVER_ADDR.
const EnvPrefix = "MOVE"

// Config stores move configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Log     LogConfig     `mapstructure:"log" json:"log"`
	Reports ReportsConfig `mapstructure:"reports" json:"reports"`

	// ProfilesFile replaces the built-in dashboards with a YAML catalog.
	// Supports ~ expansion.
	ProfilesFile string `mapstructure:"profiles_file" json:"profiles_file,omitempty"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `mapstructure:"addr" json:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode" json:"mode"`
}

// LogConfig configures the zap logger and optional rotated log file.
type LogConfig struct {
	Level             string `mapstructure:"level" json:"level"`
	Encoding          string `mapstructure:"encoding" json:"encoding"`
	Development       bool   `mapstructure:"development" json:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller" json:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace" json:"disable_stacktrace"`
	File              string `mapstructure:"file" json:"file,omitempty"`
	MaxSizeMB         int    `mapstructure:"max_size_mb" json:"max_size_mb"`
	MaxBackups        int    `mapstructure:"max_backups" json:"max_backups"`
	MaxAgeDays        int    `mapstructure:"max_age_days" json:"max_age_days"`
}

// ReportsConfig configures report files written to disk.
type ReportsConfig struct {
	TempDir string `mapstructure:"temp_dir" json:"temp_dir,omitempty"`
}

// GetTempDir returns the directory for report files with ~ expanded,
// defaulting to the system temp directory.
func (c *Config) GetTempDir() string {
	if c.Reports.TempDir == "" {
		return os.TempDir()
	}
	return ExpandPath(c.Reports.TempDir)
}

// Catalog returns the dashboards: the YAML profile file when configured,
// the built-in profiles otherwise.
func (c *Config) Catalog() (*models.Catalog, error) {
	if c.ProfilesFile == "" {
		return models.DefaultCatalog(), nil
	}
	return models.LoadCatalog(ExpandPath(c.ProfilesFile))
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "move", "config.json")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 64)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("reports.temp_dir", "")
	v.SetDefault("profiles_file", "")
}

// Load reads config from path, or from GetConfigPath when path is empty.
// A missing file yields the defaults; environment variables override both.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.AutomaticEnv()
	setDefaults(v)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to path, or to GetConfigPath when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
