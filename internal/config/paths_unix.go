//go:build !windows

package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns $HOME/.config/<appName>, falling back to a relative
// directory when HOME is unset.
func DefaultDataDir(appName string) string {
	home := os.Getenv("HOME")
	if home == "" {
		return filepath.Join(".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}
