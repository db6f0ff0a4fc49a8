package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/rdplaunch/internal/flagx"
	"github.com/dmitrijs2005/rdplaunch/internal/timex"
)

// fileConfig is a DTO used only for decoding the config file. Pointer fields
// tell "absent" from a zero value so missing keys keep their defaults.
type fileConfig struct {
	AppDataDir   *string         `json:"app_data_dir" yaml:"app_data_dir"`
	RDPClient    *string         `json:"rdp_client" yaml:"rdp_client"`
	LDAPPort     *int            `json:"ldap_port" yaml:"ldap_port"`
	LDAPUseTLS   *bool           `json:"ldap_use_tls" yaml:"ldap_use_tls"`
	ProbeTimeout *timex.Duration `json:"probe_timeout" yaml:"probe_timeout"`
	ProbePort    *int            `json:"probe_port" yaml:"probe_port"`
	LogLevel     *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.AppDataDir != nil {
		cfg.AppDataDir = *fc.AppDataDir
	}
	if fc.RDPClient != nil {
		cfg.RDPClient = *fc.RDPClient
	}
	if fc.LDAPPort != nil {
		cfg.LDAPPort = *fc.LDAPPort
	}
	if fc.LDAPUseTLS != nil {
		cfg.LDAPUseTLS = *fc.LDAPUseTLS
	}
	if fc.ProbeTimeout != nil {
		cfg.ProbeTimeout = fc.ProbeTimeout.Duration
	}
	if fc.ProbePort != nil {
		cfg.ProbePort = *fc.ProbePort
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
}
