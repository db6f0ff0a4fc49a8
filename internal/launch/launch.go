// Package launch is the connection-launch pipeline.
//
// A launch resolves the identity for a host, makes sure the per-host
// TERMSRV/<hostname> vault entry exists so the RDP client can sign on without
// prompting, writes <app-data>/Connections/<hostname>.rdp, starts the RDP
// client detached, and then records the connection in the host catalog and
// the recency log before notifying the shell.
//
// Missing credentials, a failed vault write, a failed file write and a failed
// spawn abort the launch. Bookkeeping failures after the spawn are logged
// only, since the session is already running by then.
package launch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/credentials"
	"github.com/dmitrijs2005/rdplaunch/internal/filex"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
	"github.com/dmitrijs2005/rdplaunch/internal/rdpfile"
	"github.com/dmitrijs2005/rdplaunch/internal/recent"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

// DirFunc resolves (and creates) the .rdp output directory.
type DirFunc func() (string, error)

// Deps wires a Launcher.
type Deps struct {
	Vault     vault.Vault
	AppTarget string
	Catalog   *catalog.Store
	Recent    *recent.Store
	RDPDir    DirFunc
	Spawner   Spawner
	Notifier  Notifier
	Logger    logging.Logger
}

type Launcher struct {
	vault    vault.Vault
	resolver *credentials.Resolver
	catalog  *catalog.Store
	recent   *recent.Store
	rdpDir   DirFunc
	spawner  Spawner
	notifier Notifier
	log      logging.Logger
}

func New(d Deps) *Launcher {
	n := d.Notifier
	if n == nil {
		n = Discard
	}
	return &Launcher{
		vault:    d.Vault,
		resolver: credentials.NewResolver(d.Vault, d.AppTarget),
		catalog:  d.Catalog,
		recent:   d.Recent,
		rdpDir:   d.RDPDir,
		spawner:  d.Spawner,
		notifier: n,
		log:      d.Logger,
	}
}

// Result describes a started session.
type Result struct {
	Hostname string
	RDPFile  string

	// PerHost is true when a TERMSRV entry already existed for the host.
	PerHost bool

	// Provisioned is true when this launch created the TERMSRV entry.
	Provisioned bool
}

// Launch opens an RDP session to host.
func (l *Launcher) Launch(ctx context.Context, host models.Host) (*Result, error) {
	log := l.log.With("launch_id", uuid.NewString(), "hostname", host.Hostname)

	if reason := rdpfile.CheckHostname(host.Hostname); reason != "" {
		return nil, apperr.RdpFile(host.Hostname, reason, nil)
	}

	id, perHost, err := l.resolver.ResolveForLaunch(host.Hostname)
	if err != nil {
		log.Warn(ctx, "no identity for launch", "error", err)
		return nil, err
	}
	domain, user := credentials.Parse(id.Username)
	log.Debug(ctx, "identity resolved", "per_host", perHost, "domain", domain, "user", user, "secret_len", len(id.Secret))

	res := &Result{Hostname: host.Hostname, PerHost: perHost}

	if !perHost {
		provisioned, err := l.ensureSSO(host.Hostname, credentials.DownLevel(domain, user), id.Secret)
		if err != nil {
			log.Error(ctx, "provisioning per-host credentials failed", "error", err)
			return nil, err
		}
		res.Provisioned = provisioned
		if provisioned {
			log.Info(ctx, "provisioned per-host credentials", "target", common.HostTarget(host.Hostname))
		}
	}

	path, err := l.writeFile(host.Hostname, rdpfile.Params{Hostname: host.Hostname, Username: user, Domain: domain})
	if err != nil {
		log.Error(ctx, "writing rdp file failed", "error", err)
		return nil, err
	}
	res.RDPFile = path

	if err := l.spawner.Spawn(ctx, path); err != nil {
		log.Error(ctx, "starting rdp client failed", "error", err)
		return nil, apperr.RdpLaunch(err)
	}
	log.Info(ctx, "rdp client started", "rdp_file", path)

	if _, err := l.catalog.UpdateLastConnected(host.Hostname); err != nil {
		log.Warn(ctx, "could not update last_connected", "error", err)
	}
	if err := l.recent.Add(host.Hostname, host.Description); err != nil {
		log.Warn(ctx, "could not update recent connections", "error", err)
	}

	l.notifier.Notify(ctx, Event{Kind: EventHostConnected, Hostname: host.Hostname})
	return res, nil
}

// ensureSSO writes TERMSRV/<hostname> unless an entry is already there.
// A per-host entry set by the user is never overwritten.
func (l *Launcher) ensureSSO(hostname, username, secret string) (bool, error) {
	target := common.HostTarget(hostname)
	existing, err := l.vault.Read(target)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := l.vault.Save(target, username, secret); err != nil {
		if apperr.IsKind(err, apperr.KindVault) {
			return false, err
		}
		return false, apperr.Vault("save", err)
	}
	return true, nil
}

func (l *Launcher) writeFile(hostname string, p rdpfile.Params) (string, error) {
	dir, err := l.rdpDir()
	if err != nil {
		return "", apperr.RdpFile(hostname, "", err)
	}
	path := filepath.Join(dir, rdpfile.FileName(hostname))
	if err := filex.WriteAtomic(path, rdpfile.Render(p)); err != nil {
		return "", apperr.RdpFile(hostname, "", err)
	}
	return path, nil
}

// RemoveFiles deletes every *.rdp file in the output directory and returns
// how many were removed.
func RemoveFiles(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.rdp"))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return n, apperr.File(m, err)
		}
		n++
	}
	return n, nil
}
