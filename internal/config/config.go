// Package config provides configuration management for meshkit using Viper.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "MESHKIT"

// Config represents the top-level configuration structure.
type Config struct {
	Version int          `mapstructure:"version" yaml:"version"`
	Export  ExportConfig `mapstructure:"export" yaml:"export"`
	LOD     LODConfig    `mapstructure:"lod" yaml:"lod"`
	Rename  RenameConfig `mapstructure:"rename" yaml:"rename"`
	Backup  BackupConfig `mapstructure:"backup" yaml:"backup"`
}

// ExportConfig holds the export gate settings.
type ExportConfig struct {
	IncludeAnimations bool   `mapstructure:"include_animations" yaml:"include_animations"`
	IncludeTextures   bool   `mapstructure:"include_textures" yaml:"include_textures"`
	Each              bool   `mapstructure:"each" yaml:"each"`
	Path              string `mapstructure:"path" yaml:"path"`
	FileName          string `mapstructure:"file_name" yaml:"file_name"`
	Extension         string `mapstructure:"extension" yaml:"extension"`
	// Command is the exporter argv template.
	Command []string `mapstructure:"command" yaml:"command"`
}

// LODConfig holds the LOD generator settings.
type LODConfig struct {
	Count        int     `mapstructure:"count" yaml:"count"`
	DecimateType string  `mapstructure:"decimate_type" yaml:"decimate_type"`
	DecimateStep float64 `mapstructure:"decimate_step" yaml:"decimate_step"`
}

// RenameConfig holds the rename tool defaults.
type RenameConfig struct {
	Mode   string `mapstructure:"mode" yaml:"mode"`
	Target string `mapstructure:"target" yaml:"target"`
}

// BackupConfig controls scene snapshots taken before rewrites.
type BackupConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Retention int    `mapstructure:"retention" yaml:"retention"`
	Dir       string `mapstructure:"dir" yaml:"dir"`
}

// BackupDir returns the configured snapshot directory or the XDG default.
func (c *Config) BackupDir() string {
	if c.Backup.Dir == "" {
		return paths.BackupDir()
	}
	return paths.Resolve("", c.Backup.Dir)
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support: MESHKIT_LOD_COUNT overrides lod.count
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)

	viper.SetDefault("export.include_animations", true)
	viper.SetDefault("export.include_textures", true)
	viper.SetDefault("export.each", false)
	viper.SetDefault("export.path", paths.ProjectPrefix)
	viper.SetDefault("export.file_name", "")
	viper.SetDefault("export.extension", "fbx")
	viper.SetDefault("export.command", []string{})

	viper.SetDefault("lod.count", 3)
	viper.SetDefault("lod.decimate_type", "collapse")
	viper.SetDefault("lod.decimate_step", 0.3)

	viper.SetDefault("rename.mode", "prefix_prefix")
	viper.SetDefault("rename.target", "object")

	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.retention", 10)
	viper.SetDefault("backup.dir", "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			if path != "" && !paths.Exists(path) {
				return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
			}
			return nil, errors.Wrap(err, "reading config file")
		}
		// Implicit load without a file: defaults apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%v", errors.Join(errs...))
	}

	return &cfg, nil
}

// Used returns the config file viper read, or "" when defaults apply.
func Used() string {
	return viper.ConfigFileUsed()
}
