package services

import (
	"context"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/settings"
)

// SystemService covers OS integration: start at logon and the colour theme.
type SystemService interface {
	EnableAutostart(ctx context.Context) error
	DisableAutostart(ctx context.Context) error
	// AutostartStatus returns the registered command and whether it is set.
	AutostartStatus(ctx context.Context) (string, bool, error)
	Theme(ctx context.Context) (settings.Theme, error)
}

type systemService struct {
	store      settings.Store
	name       string
	executable func() (string, error)
	log        logging.Logger
}

// NewSystemService registers autostart entries under name. executable
// resolves the program to start, usually os.Executable.
func NewSystemService(store settings.Store, name string, executable func() (string, error), log logging.Logger) SystemService {
	return &systemService{store: store, name: name, executable: executable, log: log}
}

func (s *systemService) EnableAutostart(ctx context.Context) error {
	exe, err := s.executable()
	if err != nil {
		return apperr.Settings("resolve_executable", err)
	}
	if err := settings.EnableAutostart(ctx, s.store, s.name, exe); err != nil {
		return err
	}
	s.log.Info(ctx, "autostart enabled", "command", exe)
	return nil
}

func (s *systemService) DisableAutostart(ctx context.Context) error {
	if err := settings.DisableAutostart(ctx, s.store, s.name); err != nil {
		return err
	}
	s.log.Info(ctx, "autostart disabled")
	return nil
}

func (s *systemService) AutostartStatus(ctx context.Context) (string, bool, error) {
	return settings.AutostartCommand(ctx, s.store, s.name)
}

func (s *systemService) Theme(ctx context.Context) (settings.Theme, error) {
	return settings.SystemTheme(ctx, s.store)
}
