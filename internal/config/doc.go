// Package config loads runtime configuration for the useray operator tool.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via -c or -config.
//     Files ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-p string   path to the proxy server config (default ./config.json)
//	-d string   data directory holding clients.json
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "720h" or
// integer nanoseconds. Absent keys keep their earlier value:
//
//	{
//	  "data_dir": "/var/lib/useray",
//	  "proxy_config_path": "/usr/local/etc/v2ray/config.json",
//	  "access_list_path": "inbounds.0.settings.clients",
//	  "default_duration": "720h",
//	  "default_level": 1,
//	  "log_level": "info"
//	}
//
// The default data directory is resolved per OS by DefaultDataDir:
// $HOME/.config/useray on Linux and macOS, %APPDATA%\useray on Windows.
package config
