package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rdplaunch/internal/catalog"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/launch"
	"github.com/dmitrijs2005/rdplaunch/internal/logging"
	"github.com/dmitrijs2005/rdplaunch/internal/recent"
	"github.com/dmitrijs2005/rdplaunch/internal/vault"
)

// Step is one line of a reset report.
type Step struct {
	Name   string
	Detail string
	Err    error
}

// ResetReport lists the outcome of every reset step, in execution order.
type ResetReport struct {
	Steps []Step
}

// OK reports whether every step succeeded.
func (r *ResetReport) OK() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return false
		}
	}
	return true
}

func (r *ResetReport) String() string {
	var b strings.Builder
	for _, s := range r.Steps {
		switch {
		case s.Err != nil:
			fmt.Fprintf(&b, "[FAIL] %s: %v\n", s.Name, s.Err)
		case s.Detail != "":
			fmt.Fprintf(&b, "[ OK ] %s (%s)\n", s.Name, s.Detail)
		default:
			fmt.Fprintf(&b, "[ OK ] %s\n", s.Name)
		}
	}
	return b.String()
}

func (r *ResetReport) add(name, detail string, err error) {
	r.Steps = append(r.Steps, Step{Name: name, Detail: detail, Err: err})
}

// ResetService wipes everything RDPLaunch has stored for the user.
type ResetService interface {
	Reset(ctx context.Context) *ResetReport
}

type resetService struct {
	vault     vault.Vault
	appTarget string
	rdpDir    launch.DirFunc
	catalog   *catalog.Store
	recent    *recent.Store
	notifier  launch.Notifier
	log       logging.Logger
}

func NewResetService(v vault.Vault, appTarget string, rdpDir launch.DirFunc, c *catalog.Store, r *recent.Store, n launch.Notifier, log logging.Logger) ResetService {
	if n == nil {
		n = launch.Discard
	}
	return &resetService{vault: v, appTarget: appTarget, rdpDir: rdpDir, catalog: c, recent: r, notifier: n, log: log}
}

// Reset runs every step even when an earlier one fails.
func (s *resetService) Reset(ctx context.Context) *ResetReport {
	report := &ResetReport{}

	report.add("delete default identity", "", s.vault.Delete(s.appTarget))

	n, err := s.deleteHostIdentities()
	report.add("delete per-host identities", fmt.Sprintf("%d removed", n), err)

	n, err = s.deleteRDPFiles()
	report.add("delete RDP files", fmt.Sprintf("%d removed", n), err)

	report.add("clear host catalog", "", s.catalog.DeleteAll())
	report.add("delete recent connections", "", s.recent.Remove())

	for _, st := range report.Steps {
		if st.Err != nil {
			s.log.Warn(ctx, "reset step failed", "step", st.Name, "error", st.Err)
		}
	}
	s.log.Info(ctx, "application reset", "ok", report.OK())
	s.notifier.Notify(ctx, launch.Event{Kind: launch.EventHostsUpdated})
	return report
}

// deleteHostIdentities keeps going past individual failures and returns the
// first one.
func (s *resetService) deleteHostIdentities() (int, error) {
	targets, err := s.vault.ListWithPrefix(common.TermsrvPrefix)
	if err != nil {
		return 0, err
	}
	var first error
	n := 0
	for _, t := range targets {
		if err := s.vault.Delete(t); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		n++
	}
	return n, first
}

func (s *resetService) deleteRDPFiles() (int, error) {
	dir, err := s.rdpDir()
	if err != nil {
		return 0, err
	}
	return launch.RemoveFiles(dir)
}
