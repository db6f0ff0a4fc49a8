package recent

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "recent_connections.json"))
	var tick int64 = 1_700_000_000
	s.now = func() time.Time {
		tick++
		return time.Unix(tick, 0)
	}
	return s
}

func hostnames(l *Log) []string {
	out := make([]string, 0, len(l.Connections))
	for _, e := range l.Connections {
		out = append(out, e.Hostname)
	}
	return out
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	l, err := newStore(t).Load()
	require.NoError(t, err)
	assert.Empty(t, l.Connections)
}

func TestAdd_MovesToFrontWithoutDuplicates(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Add("a", "A"))
	require.NoError(t, s.Add("b", "B"))
	require.NoError(t, s.Add("a", "A2"))

	l, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, hostnames(l))
	assert.Equal(t, "A2", l.Connections[0].Description)
	assert.Greater(t, l.Connections[0].Timestamp, l.Connections[1].Timestamp)
}

func TestAdd_EvictsOldestPastCapacity(t *testing.T) {
	s := newStore(t)
	for i := 1; i <= 6; i++ {
		require.NoError(t, s.Add(fmt.Sprintf("h%d", i), ""))
	}

	l, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"h6", "h5", "h4", "h3", "h2"}, hostnames(l))
}

func TestLogAdd_BoundedUniqueNewestFirst(t *testing.T) {
	var l Log
	seq := []string{"a", "b", "c", "a", "d", "e", "f", "b", "g"}
	for i, h := range seq {
		l.Add(h, "", int64(i))

		assert.Equal(t, h, l.Connections[0].Hostname)
		assert.LessOrEqual(t, len(l.Connections), Capacity)
		seen := map[string]bool{}
		for _, e := range l.Connections {
			assert.False(t, seen[e.Hostname], "duplicate %s", e.Hostname)
			seen[e.Hostname] = true
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	want := &Log{Connections: []models.RecentEntry{
		{Hostname: "x", Description: "X", Timestamp: 3},
		{Hostname: "y", Description: "", Timestamp: 2},
	}}
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"connections\": [\n")
	assert.Contains(t, string(raw), `"timestamp": 3`)
}

func TestLoad_CorruptDocument(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindDocument))
}

func TestRemove(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Remove(), "missing file is fine")

	require.NoError(t, s.Add("a", ""))
	require.NoError(t, s.Remove())
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}
