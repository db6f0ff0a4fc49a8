package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/launch"
	"github.com/dmitrijs2005/rdplaunch/internal/recent"
)

const appTarget = "RDPLaunch"

type recordingNotifier struct {
	mu     sync.Mutex
	events []launch.Event
}

func (r *recordingNotifier) Notify(_ context.Context, ev launch.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingNotifier) kinds() []launch.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]launch.EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newStores(t *testing.T) (*catalog.Store, *recent.Store, string) {
	t.Helper()
	root := t.TempDir()
	return catalog.New(filepath.Join(root, "hosts.csv")),
		recent.New(filepath.Join(root, "recent_connections.json")),
		root
}
