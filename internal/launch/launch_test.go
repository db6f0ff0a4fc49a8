package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/filex"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
	"github.com/dmitrijs2005/rdplaunch/internal/recent"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

const appTarget = "RDPLaunch"

type fakeSpawner struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (f *fakeSpawner) Spawn(_ context.Context, rdpFile string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rdpFile)
	return f.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

type env struct {
	root     string
	rdpDir   string
	vault    *vault.Memory
	catalog  *catalog.Store
	recent   *recent.Store
	spawner  *fakeSpawner
	notifier *recordingNotifier
	launcher *Launcher
}

func newEnv(t *testing.T, v vault.Vault) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{
		root:     root,
		rdpDir:   filepath.Join(root, "Connections"),
		vault:    vault.NewMemory(),
		catalog:  catalog.New(filepath.Join(root, "hosts.csv")),
		recent:   recent.New(filepath.Join(root, "recent_connections.json")),
		spawner:  &fakeSpawner{},
		notifier: &recordingNotifier{},
	}
	if v == nil {
		v = e.vault
	}
	e.launcher = New(Deps{
		Vault:     v,
		AppTarget: appTarget,
		Catalog:   e.catalog,
		Recent:    e.recent,
		RDPDir:    func() (string, error) { return filex.EnsureDir(e.rdpDir) },
		Spawner:   e.spawner,
		Notifier:  e.notifier,
		Logger:    logging.Nop(),
	})
	return e
}

func TestLaunch_DefaultCredential(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "s3cret"))
	host := models.Host{Hostname: "db01.corp.example.com", Description: "DB primary"}
	require.NoError(t, e.catalog.Upsert(host))

	res, err := e.launcher.Launch(context.Background(), host)
	require.NoError(t, err)
	assert.True(t, res.Provisioned)
	assert.False(t, res.PerHost)

	sso, err := e.vault.Read("TERMSRV/db01.corp.example.com")
	require.NoError(t, err)
	require.NotNil(t, sso)
	assert.Equal(t, `CORP\alice`, sso.Username)
	assert.Equal(t, "s3cret", sso.Secret)

	wantFile := filepath.Join(e.rdpDir, "db01.corp.example.com.rdp")
	assert.Equal(t, wantFile, res.RDPFile)
	content, err := os.ReadFile(wantFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "full address:s:db01.corp.example.com\r\n")
	assert.Contains(t, string(content), "username:s:alice\r\n")
	assert.Contains(t, string(content), "domain:s:CORP\r\n")

	assert.Equal(t, []string{wantFile}, e.spawner.calls)

	rl, err := e.recent.Load()
	require.NoError(t, err)
	require.NotEmpty(t, rl.Connections)
	assert.Equal(t, "db01.corp.example.com", rl.Connections[0].Hostname)
	assert.Equal(t, "DB primary", rl.Connections[0].Description)

	row, err := e.catalog.Get("db01.corp.example.com")
	require.NoError(t, err)
	require.NotNil(t, row.LastConnected)
	assert.NotEmpty(t, *row.LastConnected)

	assert.Equal(t, []Event{{Kind: EventHostConnected, Hostname: "db01.corp.example.com"}}, e.notifier.events)
}

func TestLaunch_PrincipalNameProvisionedDownLevel(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, "alice@corp.example.com", "pw"))

	_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "app1"})
	require.NoError(t, err)

	sso, _ := e.vault.Read("TERMSRV/app1")
	assert.Equal(t, `corp.example.com\alice`, sso.Username)

	bare := newEnv(t, nil)
	require.NoError(t, bare.vault.Save(appTarget, "alice", "pw"))
	_, err = bare.launcher.Launch(context.Background(), models.Host{Hostname: "app1"})
	require.NoError(t, err)
	sso, _ = bare.vault.Read("TERMSRV/app1")
	assert.Equal(t, "alice", sso.Username)
}

func TestLaunch_PerHostOverrideWins(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, "alice@corp.example.com", "global"))
	require.NoError(t, e.vault.Save("TERMSRV/web01.corp.example.com", `svc\deploy`, "perhost"))

	res, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "web01.corp.example.com"})
	require.NoError(t, err)
	assert.True(t, res.PerHost)
	assert.False(t, res.Provisioned)

	sso, _ := e.vault.Read("TERMSRV/web01.corp.example.com")
	assert.Equal(t, `svc\deploy`, sso.Username)
	assert.Equal(t, "perhost", sso.Secret)

	content, err := os.ReadFile(res.RDPFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "username:s:deploy\r\n")
	assert.Contains(t, string(content), "domain:s:svc\r\n")
}

func TestLaunch_NoCredentials(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "x.corp.example.com"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindCredentialsNotFound))

	_, statErr := os.Stat(filepath.Join(e.rdpDir, "x.corp.example.com.rdp"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, e.spawner.calls)
	assert.Equal(t, 0, e.vault.Len())
	assert.Empty(t, e.notifier.events)
}

func TestLaunch_RecencyEviction(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "pw"))

	for i := 1; i <= 6; i++ {
		_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: fmt.Sprintf("h%d", i)})
		require.NoError(t, err)
	}

	rl, err := e.recent.Load()
	require.NoError(t, err)
	got := make([]string, 0)
	for _, c := range rl.Connections {
		got = append(got, c.Hostname)
	}
	assert.Equal(t, []string{"h6", "h5", "h4", "h3", "h2"}, got)
}

func TestLaunch_ReusesExistingSSOEntry(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "pw"))

	first, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "h"})
	require.NoError(t, err)
	assert.True(t, first.Provisioned)

	second, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "h"})
	require.NoError(t, err)
	assert.True(t, second.PerHost)
	assert.False(t, second.Provisioned)

	a, _ := os.ReadFile(first.RDPFile)
	b, _ := os.ReadFile(second.RDPFile)
	assert.Equal(t, a, b)
}

type failingSaveVault struct{ *vault.Memory }

func (failingSaveVault) Save(string, string, string) error {
	return errors.New("access denied")
}

func TestLaunch_VaultWriteFailureIsFatal(t *testing.T) {
	v := failingSaveVault{vault.NewMemory()}
	require.NoError(t, v.Memory.Save(appTarget, `CORP\alice`, "pw"))
	e := newEnv(t, v)

	_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "h"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindVault))
	assert.Empty(t, e.spawner.calls)
	_, statErr := os.Stat(filepath.Join(e.rdpDir, "h.rdp"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLaunch_SpawnFailureIsFatal(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "pw"))
	require.NoError(t, e.catalog.Upsert(models.Host{Hostname: "h"}))
	e.spawner.err = errors.New("executable file not found")

	_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "h"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRdpLaunch))

	row, _ := e.catalog.Get("h")
	assert.Nil(t, row.LastConnected, "catalog untouched when spawn fails")
	rl, _ := e.recent.Load()
	assert.Empty(t, rl.Connections)
	assert.Empty(t, e.notifier.events)
}

func TestLaunch_RDPWriteFailureIsFatal(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "pw"))
	require.NoError(t, os.WriteFile(e.rdpDir, []byte("not a dir"), 0o600))

	_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "h"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRdpFile))
	assert.Empty(t, e.spawner.calls)
}

func TestLaunch_HostMissingFromCatalogStillSucceeds(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "pw"))

	_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "adhoc"})
	require.NoError(t, err)
	assert.Len(t, e.spawner.calls, 1)
	assert.Len(t, e.notifier.events, 1)
}

func TestLaunch_RejectsUnsafeHostname(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "pw"))

	_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: "../evil"})
	assert.True(t, apperr.IsKind(err, apperr.KindRdpFile))
	assert.Equal(t, 1, e.vault.Len())
}

func TestLaunch_ConcurrentLaunches(t *testing.T) {
	e := newEnv(t, nil)
	require.NoError(t, e.vault.Save(appTarget, `CORP\alice`, "pw"))
	hosts := []string{"h0", "h1", "h2", "h3"}
	for _, h := range hosts {
		require.NoError(t, e.catalog.Upsert(models.Host{Hostname: h}))
	}

	const workers = 40
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(h string) {
			defer wg.Done()
			_, err := e.launcher.Launch(context.Background(), models.Host{Hostname: h})
			errs <- err
		}(hosts[i%len(hosts)])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	targets, err := e.vault.ListWithPrefix("TERMSRV/")
	require.NoError(t, err)
	sort.Strings(targets)
	assert.Equal(t, []string{"TERMSRV/h0", "TERMSRV/h1", "TERMSRV/h2", "TERMSRV/h3"}, targets)

	for _, h := range hosts {
		got, err := os.ReadFile(filepath.Join(e.rdpDir, h+".rdp"))
		require.NoError(t, err)

		single := newEnv(t, nil)
		require.NoError(t, single.vault.Save(appTarget, `CORP\alice`, "pw"))
		res, err := single.launcher.Launch(context.Background(), models.Host{Hostname: h})
		require.NoError(t, err)
		want, err := os.ReadFile(res.RDPFile)
		require.NoError(t, err)
		assert.Equal(t, want, got, h)
	}

	assert.Len(t, e.spawner.calls, workers)
	assert.Len(t, e.notifier.events, workers)
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.rdp", "b.rdp", "keep.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o600))
	}
	n, err := RemoveFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, _ := filepath.Glob(filepath.Join(dir, "*"))
	assert.Equal(t, []string{filepath.Join(dir, "keep.txt")}, left)
}
