package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/launch"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
	"github.com/dmitrijs2005/rdplaunch/internal/netx"
	"github.com/dmitrijs2005/rdplaunch/internal/recent"
)

// Launcher starts an RDP session.
type Launcher interface {
	Launch(ctx context.Context, host models.Host) (*launch.Result, error)
}

// ConnectionService opens sessions and reports on past and reachable hosts.
type ConnectionService interface {
	Launch(ctx context.Context, hostname string) (*launch.Result, error)
	Status(ctx context.Context, hostname string) models.HostStatus
	Recent(ctx context.Context) ([]models.RecentEntry, error)
}

// ProbeOptions configures Status.
type ProbeOptions struct {
	Port    int
	Timeout time.Duration
}

type connectionService struct {
	launcher Launcher
	catalog  *catalog.Store
	recent   *recent.Store
	probe    ProbeOptions
}

func NewConnectionService(l Launcher, c *catalog.Store, r *recent.Store, probe ProbeOptions) ConnectionService {
	return &connectionService{launcher: l, catalog: c, recent: r, probe: probe}
}

// Launch connects to hostname, using its catalog description when the host
// is catalogued. Hosts outside the catalog can still be launched.
func (s *connectionService) Launch(ctx context.Context, hostname string) (*launch.Result, error) {
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		return nil, apperr.InvalidHostname(hostname, "hostname cannot be empty")
	}

	host := models.Host{Hostname: hostname}
	if row, err := s.catalog.Get(hostname); err == nil && row != nil {
		host = *row
	}
	return s.launcher.Launch(ctx, host)
}

func (s *connectionService) Status(ctx context.Context, hostname string) models.HostStatus {
	return netx.ProbeTCP(ctx, hostname, s.probe.Port, s.probe.Timeout)
}

func (s *connectionService) Recent(_ context.Context) ([]models.RecentEntry, error) {
	l, err := s.recent.Load()
	if err != nil {
		return nil, err
	}
	return l.Connections, nil
}
