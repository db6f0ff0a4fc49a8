// Package vault abstracts the operating system secret store.
//
// Entries are keyed by an opaque target string and hold a username and a
// secret. Two namespaces are used by RDPLaunch: the product name, holding the
// default identity, and TERMSRV/<hostname>, holding the per-host identity the
// platform RDP client picks up for single sign-on.
//
// Open returns the binding for the current OS: Windows Credential Manager on
// windows, the desktop keyring (Keychain, Secret Service, KWallet, pass or an
// encrypted file) elsewhere. Memory is an in-process implementation for tests
// and ephemeral runs.
package vault

import "github.com/dmitrijs2005/rdplaunch/internal/models"

// Vault is a synchronous key -> (username, secret) store.
//
// Read reports absence as (nil, nil). Delete of an absent target succeeds.
// ListWithPrefix returns matching targets in unspecified order; callers strip
// the prefix themselves. Any other failure is an *apperr.Error of kind
// KindVault.
type Vault interface {
	Save(target, username, secret string) error
	Read(target string) (*models.Identity, error)
	Delete(target string) error
	ListWithPrefix(prefix string) ([]string, error)
}

// Options configures Open.
type Options struct {
	// ServiceName scopes entries in keyring backends that support it.
	ServiceName string

	// Dir holds the encrypted-file fallback used by keyring when no desktop
	// secret service is available. Unused on windows.
	Dir string
}

// Open returns the native vault binding for this OS.
func Open(opts Options) (Vault, error) {
	return open(opts)
}
