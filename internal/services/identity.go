package services

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/credentials"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

// IdentityService manages the default identity and per-host overrides.
type IdentityService interface {
	SaveDefault(ctx context.Context, id models.Identity) error
	GetDefault(ctx context.Context) (*models.Identity, error)
	DeleteDefault(ctx context.Context) error

	SaveForHost(ctx context.Context, hostname string, id models.Identity) error
	GetForHost(ctx context.Context, hostname string) (*models.Identity, error)
	DeleteForHost(ctx context.Context, hostname string) error

	// ListHosts returns the hostnames that have a per-host identity, sorted.
	ListHosts(ctx context.Context) ([]string, error)
}

type identityService struct {
	vault     vault.Vault
	appTarget string
	log       logging.Logger
}

func NewIdentityService(v vault.Vault, appTarget string, log logging.Logger) IdentityService {
	return &identityService{vault: v, appTarget: appTarget, log: log}
}

func (s *identityService) SaveDefault(ctx context.Context, id models.Identity) error {
	if err := credentials.Validate(id); err != nil {
		return err
	}
	if err := s.vault.Save(s.appTarget, strings.TrimSpace(id.Username), id.Secret); err != nil {
		return err
	}
	s.log.Info(ctx, "default identity saved", "username", id.Username)
	return nil
}

func (s *identityService) GetDefault(_ context.Context) (*models.Identity, error) {
	return s.vault.Read(s.appTarget)
}

func (s *identityService) DeleteDefault(ctx context.Context) error {
	if err := s.vault.Delete(s.appTarget); err != nil {
		return err
	}
	s.log.Info(ctx, "default identity deleted")
	return nil
}

func (s *identityService) SaveForHost(ctx context.Context, hostname string, id models.Identity) error {
	hostname, err := cleanHostname(hostname)
	if err != nil {
		return err
	}
	if err := credentials.Validate(id); err != nil {
		return err
	}
	if err := s.vault.Save(common.HostTarget(hostname), strings.TrimSpace(id.Username), id.Secret); err != nil {
		return err
	}
	s.log.Info(ctx, "host identity saved", "hostname", hostname, "username", id.Username)
	return nil
}

func (s *identityService) GetForHost(_ context.Context, hostname string) (*models.Identity, error) {
	hostname, err := cleanHostname(hostname)
	if err != nil {
		return nil, err
	}
	return s.vault.Read(common.HostTarget(hostname))
}

func (s *identityService) DeleteForHost(ctx context.Context, hostname string) error {
	hostname, err := cleanHostname(hostname)
	if err != nil {
		return err
	}
	if err := s.vault.Delete(common.HostTarget(hostname)); err != nil {
		return err
	}
	s.log.Info(ctx, "host identity deleted", "hostname", hostname)
	return nil
}

func (s *identityService) ListHosts(_ context.Context) ([]string, error) {
	targets, err := s.vault.ListWithPrefix(common.TermsrvPrefix)
	if err != nil {
		return nil, err
	}
	hosts := make([]string, 0, len(targets))
	for _, t := range targets {
		if h := strings.TrimPrefix(t, common.TermsrvPrefix); h != "" {
			hosts = append(hosts, h)
		}
	}
	sort.Strings(hosts)
	return hosts, nil
}

func cleanHostname(hostname string) (string, error) {
	h := strings.TrimSpace(hostname)
	if h == "" {
		return "", apperr.InvalidHostname(hostname, "hostname cannot be empty")
	}
	return h, nil
}
