package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/launch"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

// Scanner lists the servers of a directory domain.
type Scanner interface {
	Scan(ctx context.Context, domain, server string, id models.Identity) (*models.ScanResult, error)
}

// HostService manages the host catalog.
type HostService interface {
	GetAll(ctx context.Context) ([]models.Host, error)
	Search(ctx context.Context, query string) ([]models.Host, error)
	Save(ctx context.Context, host models.Host) error
	Delete(ctx context.Context, hostname string) error
	DeleteAll(ctx context.Context) error

	// Scan replaces the catalog with the servers found in domain, keeping
	// last_connected for hosts that were already catalogued.
	Scan(ctx context.Context, domain, server string) (*models.ScanResult, error)
}

type hostService struct {
	// mu serialises catalog mutations issued through the shell.
	mu sync.Mutex

	catalog   *catalog.Store
	scanner   Scanner
	vault     vault.Vault
	appTarget string
	notifier  launch.Notifier
	log       logging.Logger
}

func NewHostService(c *catalog.Store, sc Scanner, v vault.Vault, appTarget string, n launch.Notifier, log logging.Logger) HostService {
	if n == nil {
		n = launch.Discard
	}
	return &hostService{catalog: c, scanner: sc, vault: v, appTarget: appTarget, notifier: n, log: log}
}

func (s *hostService) GetAll(_ context.Context) ([]models.Host, error) {
	return s.catalog.GetAll()
}

func (s *hostService) Search(_ context.Context, query string) ([]models.Host, error) {
	return s.catalog.Search(query)
}

func (s *hostService) Save(ctx context.Context, host models.Host) error {
	host.Hostname = strings.TrimSpace(host.Hostname)
	if host.Hostname == "" {
		return apperr.InvalidHostname(host.Hostname, "hostname cannot be empty")
	}

	s.mu.Lock()
	err := s.catalog.Upsert(host)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info(ctx, "host saved", "hostname", host.Hostname)
	s.notifier.Notify(ctx, launch.Event{Kind: launch.EventHostsUpdated})
	return nil
}

func (s *hostService) Delete(ctx context.Context, hostname string) error {
	s.mu.Lock()
	err := s.catalog.Delete(hostname)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info(ctx, "host deleted", "hostname", hostname)
	s.notifier.Notify(ctx, launch.Event{Kind: launch.EventHostsUpdated})
	return nil
}

func (s *hostService) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	err := s.catalog.DeleteAll()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info(ctx, "all hosts deleted")
	s.notifier.Notify(ctx, launch.Event{Kind: launch.EventHostsUpdated})
	return nil
}

func (s *hostService) Scan(ctx context.Context, domain, server string) (*models.ScanResult, error) {
	id, err := s.vault.Read(s.appTarget)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, apperr.CredentialsNotFound(domain)
	}

	res, err := s.scanner.Scan(ctx, domain, server, *id)
	if err != nil {
		s.log.Error(ctx, "domain scan failed", "domain", domain, "server", server, "error", err)
		return nil, err
	}

	s.mu.Lock()
	merged, err := s.merge(res.Hosts)
	if err == nil {
		err = s.catalog.ReplaceAll(merged)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "catalog replaced from directory", "domain", domain, "hosts", len(merged))
	s.notifier.Notify(ctx, launch.Event{Kind: launch.EventHostsUpdated})
	return &models.ScanResult{Hosts: merged, Count: len(merged)}, nil
}

// merge copies last_connected from the current catalog onto scanned hosts.
// Duplicate hostnames in the scan keep their first occurrence.
func (s *hostService) merge(scanned []models.Host) ([]models.Host, error) {
	current, err := s.catalog.GetAll()
	if err != nil {
		return nil, err
	}
	stamps := make(map[string]*string, len(current))
	for _, h := range current {
		stamps[h.Hostname] = h.LastConnected
	}

	seen := make(map[string]struct{}, len(scanned))
	merged := make([]models.Host, 0, len(scanned))
	for _, h := range scanned {
		if _, dup := seen[h.Hostname]; dup {
			continue
		}
		seen[h.Hostname] = struct{}{}
		h.LastConnected = stamps[h.Hostname]
		merged = append(merged, h)
	}
	return merged, nil
}
