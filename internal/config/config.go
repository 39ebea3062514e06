// Package config loads application configuration from
// ~/.billsight/config.yaml with BILLSIGHT_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Report   ReportConfig   `mapstructure:"report"`
	Identity IdentityConfig `mapstructure:"identity"`
}

// DatabaseConfig holds the store location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	GroupBy  string `mapstructure:"group_by"`
	PageSize int    `mapstructure:"page_size"`
}

// IdentityConfig describes who is running reports; scope enforcement
// combines these with the role-derived permission profile.
type IdentityConfig struct {
	UserID   string   `mapstructure:"user_id"`
	Role     string   `mapstructure:"role"`
	ReadOnly bool     `mapstructure:"read_only"`
	TeamIDs  []string `mapstructure:"team_ids"`
}

// Load reads configuration, falling back to defaults when no config
// file exists. A present-but-broken file is an error; a missing one is
// not.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".billsight"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("database.path", filepath.Join(home, ".billsight", "billsight.db"))
	v.SetDefault("report.group_by", "date")
	v.SetDefault("report.page_size", 10)
	v.SetDefault("identity.user_id", "")
	v.SetDefault("identity.role", "")
	v.SetDefault("identity.read_only", false)
}
