// Package common contains constants shared across RDPLaunch components.
package common

const (
	// ProductName names the app-data folder and the vault target holding
	// the default identity.
	ProductName = "RDPLaunch"

	// TermsrvPrefix prefixes per-host vault targets. The Windows RDP client
	// looks credentials up under exactly this prefix.
	TermsrvPrefix = "TERMSRV/"

	// RDPPort is the port probed by the host status check.
	RDPPort = 3389

	// LDAPPort is the plain LDAP port used by the directory scanner.
	LDAPPort = 389

	// LDAPSPort is used when LDAP over TLS is enabled.
	LDAPSPort = 636
)

// HostTarget returns the per-host vault target for hostname.
func HostTarget(hostname string) string {
	return TermsrvPrefix + hostname
}
