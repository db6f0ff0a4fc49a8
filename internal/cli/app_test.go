package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/filex"
	"github.com/dmitrijs2005/rdplaunch/internal/launch"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
	"github.com/dmitrijs2005/rdplaunch/internal/recent"
	"github.com/dmitrijs2005/rdplaunch/internal/services"
	"github.com/dmitrijs2005/rdplaunch/internal/settings"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

const testTarget = "RDPLaunch"

type recordingSpawner struct {
	files []string
}

func (s *recordingSpawner) Spawn(_ context.Context, f string) error {
	s.files = append(s.files, f)
	return nil
}

type noScanner struct{}

func (noScanner) Scan(context.Context, string, string, models.Identity) (*models.ScanResult, error) {
	return &models.ScanResult{Hosts: []models.Host{{Hostname: "app1"}, {Hostname: "app2"}}, Count: 2}, nil
}

type testEnv struct {
	root    string
	vault   *vault.Memory
	spawner *recordingSpawner
	out     *bytes.Buffer
	notify  *shellNotifier
	svc     Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	root := t.TempDir()
	rdpDir := func() (string, error) { return filex.EnsureDir(filepath.Join(root, "Connections")) }
	v := vault.NewMemory()
	cat := catalog.New(filepath.Join(root, "hosts.csv"))
	rec := recent.New(filepath.Join(root, "recent_connections.json"))
	st, err := settings.OpenSQLite(context.Background(), root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	n := newShellNotifier()
	sp := &recordingSpawner{}
	log := logging.Nop()
	l := launch.New(launch.Deps{
		Vault: v, AppTarget: testTarget, Catalog: cat, Recent: rec,
		RDPDir: rdpDir, Spawner: sp, Notifier: n, Logger: log,
	})

	return &testEnv{
		root:    root,
		vault:   v,
		spawner: sp,
		out:     &bytes.Buffer{},
		notify:  n,
		svc: Services{
			Identities:  services.NewIdentityService(v, testTarget, log),
			Hosts:       services.NewHostService(cat, noScanner{}, v, testTarget, n, log),
			Connections: services.NewConnectionService(l, cat, rec, services.ProbeOptions{Port: 3389, Timeout: time.Second}),
			Reset:       services.NewResetService(v, testTarget, rdpDir, cat, rec, n, log),
			System:      services.NewSystemService(st, testTarget, func() (string, error) { return "/usr/bin/rdplaunch", nil }, log),
		},
	}
}

func (e *testEnv) run(t *testing.T, input string, args ...string) error {
	t.Helper()
	e.out.Reset()
	a := newApp(e.svc, e.notify, logging.Nop(), strings.NewReader(input), e.out)
	return a.Run(context.Background(), args)
}

func TestApp_HostsLifecycle(t *testing.T) {
	e := newTestEnv(t)

	require.NoError(t, e.run(t, "", "hosts", "add", "db01.corp.example.com", "DB", "primary"))
	assert.Contains(t, e.out.String(), "host list updated")

	require.NoError(t, e.run(t, "", "hosts"))
	assert.Contains(t, e.out.String(), "HOSTNAME")
	assert.Contains(t, e.out.String(), "db01.corp.example.com")
	assert.Contains(t, e.out.String(), "DB primary")

	require.NoError(t, e.run(t, "", "hosts", "search", "PRIMARY"))
	assert.Contains(t, e.out.String(), "db01.corp.example.com")

	require.NoError(t, e.run(t, "n\n", "hosts", "clear"))
	assert.Contains(t, e.out.String(), "Cancelled.")

	require.NoError(t, e.run(t, "", "hosts", "clear", "--yes"))
	require.NoError(t, e.run(t, "", "hosts"))
	assert.Contains(t, e.out.String(), "No hosts.")
}

func TestApp_LaunchWithoutCredentialsPrintsProjection(t *testing.T) {
	e := newTestEnv(t)

	err := e.run(t, "", "launch", "x.corp.example.com")
	require.Error(t, err)
	assert.Contains(t, e.out.String(), "Error [CREDENTIALS_NOT_FOUND]: No credentials found for x.corp.example.com")
	assert.Contains(t, e.out.String(), "Hint:")
	assert.Empty(t, e.spawner.files)
}

func TestApp_SaveCredentialsThenLaunch(t *testing.T) {
	e := newTestEnv(t)
	stubTerminal(t, false, nil, nil)

	require.NoError(t, e.run(t, "s3cret\n", "credentials", "set", `CORP\alice`))
	id, err := e.vault.Read(testTarget)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "s3cret", id.Secret)

	require.NoError(t, e.run(t, "", "credentials"))
	assert.Contains(t, e.out.String(), `CORP\alice`)
	assert.NotContains(t, e.out.String(), "s3cret")

	require.NoError(t, e.run(t, "", "launch", "db01"))
	require.Len(t, e.spawner.files, 1)
	assert.Contains(t, e.out.String(), "connected to db01")

	ev, ok := e.notify.Last()
	require.True(t, ok)
	assert.Equal(t, launch.Event{Kind: launch.EventHostConnected, Hostname: "db01"}, ev)

	require.NoError(t, e.run(t, "", "recent"))
	assert.Contains(t, e.out.String(), "db01")

	require.NoError(t, e.run(t, "", "host-credentials", "list"))
	assert.Contains(t, e.out.String(), "db01")
}

func TestApp_HostCredentialsPromptForUsername(t *testing.T) {
	e := newTestEnv(t)
	stubTerminal(t, false, nil, nil)

	require.NoError(t, e.run(t, "svc\\deploy\nperhost\n", "host-credentials", "set", "web01"))
	id, err := e.vault.Read("TERMSRV/web01")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, `svc\deploy`, id.Username)
	assert.Equal(t, "perhost", id.Secret)

	require.NoError(t, e.run(t, "", "host-credentials", "delete", "web01"))
	require.NoError(t, e.run(t, "", "host-credentials", "show", "web01"))
	assert.Contains(t, e.out.String(), "No credentials for web01 stored.")
}

func TestApp_ScanReset(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.vault.Save(testTarget, "alice", "pw"))

	require.NoError(t, e.run(t, "", "scan", "corp.example.com", "dc1"))
	assert.Contains(t, e.out.String(), "Found 2 hosts in corp.example.com")

	require.NoError(t, e.run(t, "", "reset", "--yes"))
	assert.Contains(t, e.out.String(), "[ OK ] delete default identity")
	assert.Contains(t, e.out.String(), "[ OK ] clear host catalog")

	id, err := e.vault.Read(testTarget)
	require.NoError(t, err)
	assert.Nil(t, id)
	_, err = os.Stat(filepath.Join(e.root, "recent_connections.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestApp_AutostartAndTheme(t *testing.T) {
	e := newTestEnv(t)

	require.NoError(t, e.run(t, "", "autostart", "on"))
	require.NoError(t, e.run(t, "", "autostart"))
	assert.Contains(t, e.out.String(), "Autostart: on (/usr/bin/rdplaunch)")

	require.NoError(t, e.run(t, "", "autostart", "off"))
	require.NoError(t, e.run(t, "", "autostart", "status"))
	assert.Contains(t, e.out.String(), "Autostart: off")

	assert.Error(t, e.run(t, "", "autostart", "sometimes"))

	require.NoError(t, e.run(t, "", "theme"))
	assert.Contains(t, e.out.String(), "Theme: light")
}

func TestApp_ArgumentErrorsArePrinted(t *testing.T) {
	e := newTestEnv(t)

	err := e.run(t, "", "launch")
	require.Error(t, err)
	assert.Contains(t, e.out.String(), "Error [UNKNOWN_ERROR]")
}

func TestApp_NoArgsStartsREPL(t *testing.T) {
	e := newTestEnv(t)
	silencePrint(t)

	require.NoError(t, e.run(t, "add h1 first\nconnect\nexit\n"))
	hosts, err := e.svc.Hosts.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Host{{Hostname: "h1", Description: "first"}}, hosts)
	assert.Contains(t, e.out.String(), "Usage: connect <host>")
}
