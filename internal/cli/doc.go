// Package cli is the RDPLaunch shell.
//
// It wires configuration, the OS vault and settings store, the host catalog,
// the recency log, the directory scanner and the launcher, then exposes every
// operation two ways: as one-shot cobra subcommands ("rdplaunch launch db01")
// and as an interactive REPL, started when no subcommand is given.
//
// Errors are printed as their projected form (code, message and, when there
// is one, a remediation hint). Core notifications are printed as they arrive.
package cli
