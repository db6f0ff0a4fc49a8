package cli

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/rdplaunch/internal/launch"
)

// shellNotifier prints core events and remembers the last one. Notify may
// be called from any goroutine.
type shellNotifier struct {
	mu   sync.Mutex
	last *launch.Event
	out  io.Writer
}

func newShellNotifier() *shellNotifier {
	return &shellNotifier{out: os.Stdout}
}

func (n *shellNotifier) Notify(_ context.Context, ev launch.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = &ev

	c := color.New(color.FgCyan)
	switch ev.Kind {
	case launch.EventHostConnected:
		c.Fprintf(n.out, "* connected to %s\n", ev.Hostname)
	case launch.EventHostsUpdated:
		c.Fprintln(n.out, "* host list updated")
	}
}

// Last returns the most recent event, if any.
func (n *shellNotifier) Last() (launch.Event, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return launch.Event{}, false
	}
	return *n.last, true
}
