//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func DefaultDataDir(appName string) string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return appName
	}
	return filepath.Join(appData, appName)
}
