package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/useray/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-p string   path to the proxy server config
//	-d string   data directory holding clients.json
//	-l string   log level
//
// Only these flags are read from os.Args (see flagx.FilterArgs), so -c is
// left to parseFile.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ProxyConfigPath, "p", cfg.ProxyConfigPath, "path to the proxy server config")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory holding clients.json")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
