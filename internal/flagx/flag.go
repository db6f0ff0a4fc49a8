// Package flagx carves the process-level flags out of argv so the config
// loader and the command tree can each parse only what they own.
package flagx

import (
	"flag"
	"strings"
)

// ConfigFlags names the flags that select a configuration file.
var ConfigFlags = []string{"-c", "-config", "--config"}

// FilterArgs returns the arguments that belong to allowedFlags, together with
// their values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
//
// A flag whose next argument starts with '-' is kept without a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	filtered, _ := split(args, allowedFlags, nil)
	return filtered
}

// FilterBoolArgs returns the arguments that are one of boolFlags. Boolean
// flags never consume the following argument.
func FilterBoolArgs(args []string, boolFlags []string) []string {
	filtered, _ := split(args, nil, boolFlags)
	return filtered
}

// StripArgs returns args with every valued and boolean flag removed, in
// their original order. The result is what remains for the command tree.
func StripArgs(args []string, valued, bools []string) []string {
	_, rest := split(args, valued, bools)
	return rest
}

func split(args []string, valued, bools []string) (matched, rest []string) {
	v := toSet(valued)
	b := toSet(bools)

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--" ends flag processing; everything after it belongs to the command.
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := v[name]; ok {
				matched = append(matched, arg)
				continue
			}
			if _, ok := b[name]; ok {
				matched = append(matched, arg)
				continue
			}
			rest = append(rest, arg)
			continue
		}

		if _, ok := b[arg]; ok {
			matched = append(matched, arg)
			continue
		}

		if _, ok := v[arg]; ok {
			matched = append(matched, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				matched = append(matched, args[i+1])
				i++
			}
			continue
		}

		rest = append(rest, arg)
	}

	return matched, rest
}

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// ConfigFile extracts the config file path given with -c, -config or
// --config. It returns "" when none is present.
func ConfigFile(args []string) string {
	var config string

	filtered := FilterArgs(args, ConfigFlags)

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
