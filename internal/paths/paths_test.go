package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
)

func TestNew_DefaultUsesUserConfigDir(t *testing.T) {
	base := t.TempDir()
	orig := userConfigDir
	userConfigDir = func() (string, error) { return base, nil }
	t.Cleanup(func() { userConfigDir = orig })

	r, err := New("")
	require.NoError(t, err)

	root, err := r.Root()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "RDPLaunch"), root)

	fi, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestNew_UserConfigDirError(t *testing.T) {
	orig := userConfigDir
	userConfigDir = func() (string, error) { return "", errors.New("no home") }
	t.Cleanup(func() { userConfigDir = orig })

	_, err := New("")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindFile))
}

func TestResolvers(t *testing.T) {
	root := filepath.Join(t.TempDir(), "app")
	r, err := New(root)
	require.NoError(t, err)

	catalog, err := r.CatalogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hosts.csv"), catalog)

	recent, err := r.RecentFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "recent_connections.json"), recent)

	rdp, err := r.RDPDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Connections"), rdp)
	fi, err := os.Stat(rdp)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	kr, err := r.KeyringDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "keyring"), kr)
}
