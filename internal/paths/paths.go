// Package paths resolves the canonical on-disk locations used by RDPLaunch.
//
// Everything lives under a per-user application data root: on windows this is
// %APPDATA%\RDPLaunch, elsewhere $XDG_CONFIG_HOME/RDPLaunch (see
// os.UserConfigDir). Every resolver creates its directory when missing; the
// registry never deletes anything.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/filex"
)

const (
	CatalogFileName = "hosts.csv"
	RecentFileName  = "recent_connections.json"
	RDPDirName      = "Connections"
	KeyringDirName  = "keyring"
)

// userConfigDir is a test seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

type Registry struct {
	root string
}

// New returns a registry rooted at override, or at the per-user roaming
// directory joined with the product name when override is empty.
func New(override string) (*Registry, error) {
	if override != "" {
		return &Registry{root: override}, nil
	}
	base, err := userConfigDir()
	if err != nil {
		return nil, apperr.File("app data root", fmt.Errorf("resolve user config dir: %w", err))
	}
	return &Registry{root: filepath.Join(base, common.ProductName)}, nil
}

// Root returns the application data root.
func (r *Registry) Root() (string, error) {
	return ensure(r.root)
}

// CatalogFile returns the path of the host catalog.
func (r *Registry) CatalogFile() (string, error) {
	return r.file(CatalogFileName)
}

// RecentFile returns the path of the recency log.
func (r *Registry) RecentFile() (string, error) {
	return r.file(RecentFileName)
}

// RDPDir returns the directory generated .rdp files are written to.
func (r *Registry) RDPDir() (string, error) {
	return ensure(filepath.Join(r.root, RDPDirName))
}

// KeyringDir returns the directory for the encrypted-file vault fallback.
func (r *Registry) KeyringDir() (string, error) {
	return ensure(filepath.Join(r.root, KeyringDirName))
}

func (r *Registry) file(name string) (string, error) {
	root, err := r.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

func ensure(dir string) (string, error) {
	d, err := filex.EnsureDir(dir)
	if err != nil {
		return "", apperr.File(dir, err)
	}
	return d, nil
}
