package config

import (
	"time"

	"github.com/dmitrijs2005/useray/internal/models"
	"github.com/dmitrijs2005/useray/internal/repositories/accesslist"
)

// AppName names the per-user data directory.
const AppName = "useray"

// Config holds runtime settings for the useray operator tool.
//
// Fields:
//   - DataDir: directory holding clients.json.
//   - ProxyConfigPath: the proxy server's JSON configuration.
//   - AccessListPath: gjson path of the access array inside that document.
//   - DefaultDuration: window offered to new clients.
//   - DefaultLevel: level offered to new clients.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DataDir         string
	ProxyConfigPath string
	AccessListPath  string
	DefaultDuration time.Duration
	DefaultLevel    int
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = DefaultDataDir(AppName)
	c.ProxyConfigPath = "./config.json"
	c.AccessListPath = accesslist.DefaultPath
	c.DefaultDuration = models.OneMonth
	c.DefaultLevel = 1
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
