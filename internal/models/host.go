// Package models defines the data shared by the RDPLaunch core packages.
package models

import "strings"

// Host is a catalog row. Hostname is the unique key.
type Host struct {
	Hostname    string `json:"hostname"`
	Description string `json:"description"`

	// LastConnected is a display string in day-first local format; nil means
	// the host was never connected through this tool.
	LastConnected *string `json:"last_connected,omitempty"`
}

// Matches reports whether query is a case-insensitive substring of the
// hostname or the description. An empty query matches everything.
func (h Host) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(h.Hostname), q) ||
		strings.Contains(strings.ToLower(h.Description), q)
}

// Identity is a username/secret pair as stored in the vault. Username is
// opaque here; see package credentials for how it is interpreted.
type Identity struct {
	Username string `json:"username"`
	Secret   string `json:"-"`
}

// RecentEntry is one element of the recency log.
type RecentEntry struct {
	Hostname    string `json:"hostname"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

// ScanResult is the transient outcome of a directory scan.
type ScanResult struct {
	Hosts []Host `json:"hosts"`
	Count int    `json:"count"`
}

// HostStatus is the outcome of a reachability probe.
type HostStatus string

const (
	HostOnline  HostStatus = "online"
	HostOffline HostStatus = "offline"
	HostUnknown HostStatus = "unknown"
)

// StringPtr is a convenience for building optional fields.
func StringPtr(s string) *string { return &s }
