package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/rdplaunch/internal/flagx"
)

var (
	valuedFlags = []string{"-d", "-r", "-t"}
	boolFlags   = []string{"-v"}
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed above are looked at; the rest of argv belongs to the
// command tree.
func parseFlags(cfg *Config, args []string) error {
	filtered := append(flagx.FilterArgs(args, valuedFlags), flagx.FilterBoolArgs(args, boolFlags)...)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.AppDataDir, "d", cfg.AppDataDir, "app-data directory")
	fs.StringVar(&cfg.RDPClient, "r", cfg.RDPClient, "RDP client executable")
	probeTimeout := fs.Int("t", int(cfg.ProbeTimeout.Seconds()), "host status probe timeout (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	// Only an explicit -t replaces the timeout; sub-second file values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.ProbeTimeout = time.Duration(*probeTimeout) * time.Second
		}
	})
	return nil
}

// RemainingArgs returns args without the flags this package owns.
func RemainingArgs(args []string) []string {
	valued := append(append([]string{}, flagx.ConfigFlags...), valuedFlags...)
	return flagx.StripArgs(args, valued, boolFlags)
}
