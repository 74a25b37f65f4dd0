// Package flagx lets several packages read their own flags from os.Args
// without tripping over each other's.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in allowedFlags, together with their
// values, preserving order. Both "-p value" and "-p=value" are recognised. A
// token starting with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = true
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if allowed[name] {
				kept = append(kept, arg)
			}
			continue
		}
		if !allowed[arg] {
			continue
		}
		kept = append(kept, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			kept = append(kept, args[next])
			i = next
		}
	}
	return kept
}

// ConfigFileFlags returns the config file path given with -c or -config, or
// an empty string. Every other argument is ignored.
func ConfigFileFlags() string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to a JSON or YAML config file")
	fs.StringVar(&path, "c", "", "path to a JSON or YAML config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config"}))

	return path
}
