package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-p", "/etc/v2ray/config.json", "-d", "/tmp/useray", "-l", "debug"},
			expected: &Config{ProxyConfigPath: "/etc/v2ray/config.json", DataDir: "/tmp/useray", LogLevel: "debug"}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-c", "cfg.json", "-p", "x.json"},
			expected: &Config{ProxyConfigPath: "x.json"}},
		{name: "missing value", args: []string{"cmd", "-p"}, expectPanic: true, expected: &Config{}},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(cfg) })
				assert.Empty(t, cmp.Diff(tt.expected, cfg))
			} else {
				require.Panics(t, func() { parseFlags(cfg) })
			}
		})
	}
}
