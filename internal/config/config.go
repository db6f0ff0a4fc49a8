package config

import (
	"time"

	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/launch"
)

// Config holds runtime settings for the RDPLaunch shell.
type Config struct {
	// AppDataDir overrides the app-data root. Empty means the OS default.
	AppDataDir string
	RDPClient  string

	// LDAPPort of 0 selects 389, or 636 when LDAPUseTLS is set.
	LDAPPort   int
	LDAPUseTLS bool

	ProbeTimeout time.Duration
	ProbePort    int

	LogLevel string
	Verbose  bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AppDataDir = ""
	c.RDPClient = launch.DefaultClient
	c.LDAPPort = 0
	c.LDAPUseTLS = false
	c.ProbeTimeout = 2 * time.Second
	c.ProbePort = common.RDPPort
	c.LogLevel = "info"
	c.Verbose = false
}

// EffectiveLogLevel is LogLevel, or "debug" when Verbose is set.
func (c *Config) EffectiveLogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}

// LoadConfig constructs a Config from args (usually os.Args[1:]): defaults,
// then the config file, then flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
