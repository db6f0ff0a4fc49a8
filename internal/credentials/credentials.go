// Package credentials interprets stored usernames and picks the identity a
// launch uses.
//
// Three username forms are recognised: bare ("user"), down-level
// ("DOMAIN\user") and principal ("user@domain.tld").
package credentials

import (
	"strings"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

// Parse splits username into its domain and bare user. Down-level names
// split on the first backslash, principal names on the first '@'. A bare
// name has an empty domain.
func Parse(username string) (domain, user string) {
	if i := strings.IndexByte(username, '\\'); i >= 0 {
		return username[:i], username[i+1:]
	}
	if i := strings.IndexByte(username, '@'); i >= 0 {
		return username[i+1:], username[:i]
	}
	return "", username
}

// DownLevel renders domain\user, or just user when domain is empty.
func DownLevel(domain, user string) string {
	if domain == "" {
		return user
	}
	return domain + `\` + user
}

// BindName normalises username for an LDAP simple bind: names that already
// carry a domain are used as-is, bare names become user@domain.
func BindName(username, domain string) string {
	if strings.ContainsAny(username, `@\`) {
		return username
	}
	return username + "@" + domain
}

// Validate rejects identities that cannot be stored.
func Validate(id models.Identity) error {
	if strings.TrimSpace(id.Username) == "" {
		return apperr.InvalidCredentials("username cannot be empty")
	}
	if id.Secret == "" {
		return apperr.InvalidCredentials("password cannot be empty")
	}
	_, user := Parse(id.Username)
	if user == "" {
		return apperr.InvalidCredentials("username has a domain but no user")
	}
	return nil
}

// Resolver looks up launch identities in the vault.
type Resolver struct {
	vault     vault.Vault
	appTarget string
}

func NewResolver(v vault.Vault, appTarget string) *Resolver {
	return &Resolver{vault: v, appTarget: appTarget}
}

// ResolveForLaunch returns the per-host identity for hostname when present,
// otherwise the default identity. fromHost reports which one was used.
func (r *Resolver) ResolveForLaunch(hostname string) (id *models.Identity, fromHost bool, err error) {
	id, err = r.vault.Read(common.HostTarget(hostname))
	if err != nil {
		return nil, false, err
	}
	if id != nil {
		return id, true, nil
	}

	id, err = r.vault.Read(r.appTarget)
	if err != nil {
		return nil, false, err
	}
	if id != nil {
		return id, false, nil
	}
	return nil, false, apperr.CredentialsNotFound(hostname)
}
