package launch

import (
	"context"
	"os/exec"
)

// Spawner starts the platform RDP client for an .rdp file and returns
// without waiting for the session to end.
type Spawner interface {
	Spawn(ctx context.Context, rdpFile string) error
}

// ProcessSpawner runs Client with the .rdp path as its only argument, in its
// own process group so closing the shell does not end the session.
type ProcessSpawner struct {
	Client string
}

func (p ProcessSpawner) Spawn(_ context.Context, rdpFile string) error {
	cmd := exec.Command(p.Client, rdpFile)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap in the background; the caller never waits on the session
	go func() { _ = cmd.Wait() }()
	return nil
}
