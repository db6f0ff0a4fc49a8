//go:build windows

package vault

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf16"

	"github.com/danieljoos/wincred"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

// WinCred binds to Windows Credential Manager using generic credentials.
// Secrets are stored as UTF-16LE, which is what mstsc expects to find under
// TERMSRV/<hostname>. Domain-password entries that mstsc itself writes under
// the same targets are listed too, so Read and Delete fall back to them.
type WinCred struct{}

var (
	getGeneric    = wincred.GetGenericCredential
	getDomain     = wincred.GetDomainPassword
	listFiltered  = wincred.FilteredList
	deleteGeneric = func(c *wincred.GenericCredential) error { return c.Delete() }
	deleteDomain  = func(c *wincred.DomainPassword) error { return c.Delete() }
)

func open(Options) (Vault, error) {
	return WinCred{}, nil
}

func (WinCred) Save(target, username, secret string) error {
	cred := wincred.NewGenericCredential(target)
	cred.UserName = username
	cred.CredentialBlob = encodeSecret(secret)
	cred.Persist = wincred.PersistLocalMachine
	if err := cred.Write(); err != nil {
		return apperr.Vault("save", err)
	}
	return nil
}

func (WinCred) Read(target string) (*models.Identity, error) {
	cred, err := getGeneric(target)
	if err == nil {
		return &models.Identity{Username: cred.UserName, Secret: decodeSecret(cred.CredentialBlob)}, nil
	}
	if !errors.Is(err, wincred.ErrElementNotFound) {
		return nil, apperr.Vault("read", err)
	}
	// The blob of a domain password is never returned to callers.
	dom, err := getDomain(target)
	if err != nil {
		if errors.Is(err, wincred.ErrElementNotFound) {
			return nil, nil
		}
		return nil, apperr.Vault("read", err)
	}
	return &models.Identity{Username: dom.UserName}, nil
}

func (WinCred) Delete(target string) error {
	cred, err := getGeneric(target)
	switch {
	case err == nil:
		if err := deleteGeneric(cred); err != nil {
			return apperr.Vault("delete", err)
		}
	case !errors.Is(err, wincred.ErrElementNotFound):
		return apperr.Vault("delete", err)
	}

	dom, err := getDomain(target)
	if err != nil {
		if errors.Is(err, wincred.ErrElementNotFound) {
			return nil
		}
		return apperr.Vault("delete", err)
	}
	if err := deleteDomain(dom); err != nil {
		return apperr.Vault("delete", err)
	}
	return nil
}

func (WinCred) ListWithPrefix(prefix string) ([]string, error) {
	creds, err := listFiltered(prefix + "*")
	if err != nil {
		if errors.Is(err, wincred.ErrElementNotFound) {
			return []string{}, nil
		}
		return nil, apperr.Vault("list", err)
	}
	out := make([]string, 0, len(creds))
	for _, c := range creds {
		if strings.HasPrefix(c.TargetName, prefix) {
			out = append(out, c.TargetName)
		}
	}
	return out, nil
}

func encodeSecret(s string) []byte {
	u := utf16.Encode([]rune(s))
	b := make([]byte, len(u)*2)
	for i, r := range u {
		binary.LittleEndian.PutUint16(b[i*2:], r)
	}
	return b
}

func decodeSecret(b []byte) string {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(u))
}
