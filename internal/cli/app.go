package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/config"
	"github.com/dmitrijs2005/rdplaunch/internal/directory"
	"github.com/dmitrijs2005/rdplaunch/internal/launch"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/paths"
	"github.com/dmitrijs2005/rdplaunch/internal/recent"
	"github.com/dmitrijs2005/rdplaunch/internal/services"
	"github.com/dmitrijs2005/rdplaunch/internal/settings"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

// Services bundles what the shell calls into.
type Services struct {
	Identities  services.IdentityService
	Hosts       services.HostService
	Connections services.ConnectionService
	Reset       services.ResetService
	System      services.SystemService
}

type App struct {
	svc      Services
	notifier *shellNotifier
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	closers []io.Closer
}

// NewApp opens the stores under the configured app-data root and builds the
// services. Close releases the settings store.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	reg, err := paths.New(cfg.AppDataDir)
	if err != nil {
		return nil, err
	}
	root, err := reg.Root()
	if err != nil {
		return nil, err
	}
	keyringDir, err := reg.KeyringDir()
	if err != nil {
		return nil, err
	}
	catalogFile, err := reg.CatalogFile()
	if err != nil {
		return nil, err
	}
	recentFile, err := reg.RecentFile()
	if err != nil {
		return nil, err
	}

	v, err := vault.Open(vault.Options{ServiceName: common.ProductName, Dir: keyringDir})
	if err != nil {
		return nil, err
	}
	st, err := settings.Open(ctx, root)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(catalogFile)
	rec := recent.New(recentFile)
	notifier := newShellNotifier()

	scanner := directory.NewScanner(directory.DialLDAP, directory.Options{Port: cfg.LDAPPort, UseTLS: cfg.LDAPUseTLS}, log)
	launcher := launch.New(launch.Deps{
		Vault:     v,
		AppTarget: common.ProductName,
		Catalog:   cat,
		Recent:    rec,
		RDPDir:    reg.RDPDir,
		Spawner:   launch.ProcessSpawner{Client: cfg.RDPClient},
		Notifier:  notifier,
		Logger:    log,
	})

	svc := Services{
		Identities:  services.NewIdentityService(v, common.ProductName, log),
		Hosts:       services.NewHostService(cat, scanner, v, common.ProductName, notifier, log),
		Connections: services.NewConnectionService(launcher, cat, rec, services.ProbeOptions{Port: cfg.ProbePort, Timeout: cfg.ProbeTimeout}),
		Reset:       services.NewResetService(v, common.ProductName, reg.RDPDir, cat, rec, notifier, log),
		System:      services.NewSystemService(st, common.ProductName, os.Executable, log),
	}

	a := newApp(svc, notifier, log, os.Stdin, os.Stdout)
	a.closers = append(a.closers, st)
	return a, nil
}

func newApp(svc Services, n *shellNotifier, log logging.Logger, in io.Reader, out io.Writer) *App {
	if n == nil {
		n = newShellNotifier()
	}
	n.out = out
	return &App{svc: svc, notifier: n, log: log, reader: bufio.NewReader(in), out: out}
}

// Run executes args as a subcommand, or starts the REPL when args is empty.
// Any returned error has already been printed.
func (a *App) Run(ctx context.Context, args []string) error {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.out)
	err := root.ExecuteContext(ctx)
	if err != nil {
		var r reportedError
		if !errors.As(err, &r) {
			a.report(err)
		}
	}
	return err
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
