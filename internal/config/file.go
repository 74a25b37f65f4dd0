package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/useray/internal/flagx"
	"github.com/dmitrijs2005/useray/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files. Pointer
// fields tell "absent" apart from a zero value, so a file may override only
// some settings.
type FileConfig struct {
	DataDir         *string         `json:"data_dir" yaml:"data_dir"`
	ProxyConfigPath *string         `json:"proxy_config_path" yaml:"proxy_config_path"`
	AccessListPath  *string         `json:"access_list_path" yaml:"access_list_path"`
	DefaultDuration *timex.Duration `json:"default_duration" yaml:"default_duration"`
	DefaultLevel    *int            `json:"default_level" yaml:"default_level"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays Config with values from the file named by -c/-config.
// It panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.ProxyConfigPath != nil {
		cfg.ProxyConfigPath = *fc.ProxyConfigPath
	}
	if fc.AccessListPath != nil {
		cfg.AccessListPath = *fc.AccessListPath
	}
	if fc.DefaultDuration != nil {
		cfg.DefaultDuration = fc.DefaultDuration.Duration
	}
	if fc.DefaultLevel != nil {
		cfg.DefaultLevel = *fc.DefaultLevel
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
}
