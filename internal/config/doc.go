// Package config loads runtime configuration for the RDPLaunch shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   app-data directory (default: per-user roaming dir + RDPLaunch)
//	-r string   RDP client executable
//	-t int      host status probe timeout (seconds)
//	-v          verbose logging (forces the debug level)
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "2s" or integer
// nanoseconds:
//
//	{
//	  "app_data_dir": "",
//	  "rdp_client": "mstsc.exe",
//	  "ldap_port": 0,
//	  "ldap_use_tls": false,
//	  "probe_timeout": "2s",
//	  "probe_port": 3389,
//	  "log_level": "info"
//	}
//
// Keys missing from the file keep their defaults. This package does not read
// environment variables.
package config
