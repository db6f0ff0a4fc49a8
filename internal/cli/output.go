package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

var (
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed, color.Bold)
	hintColor  = color.New(color.FgYellow)
	mutedColor = color.New(color.Faint)
)

func (a *App) ok(format string, args ...any) {
	okColor.Fprintf(a.out, format+"\n", args...)
}

// printError writes the projected form of err.
func (a *App) printError(err error) {
	p := apperr.Project(err)
	errColor.Fprintf(a.out, "Error [%s]: ", p.Code)
	fmt.Fprintln(a.out, p.Message)
	if p.Remediation != "" {
		hintColor.Fprint(a.out, "  Hint: ")
		fmt.Fprintln(a.out, p.Remediation)
	}
}

func (a *App) printHosts(hosts []models.Host) {
	if len(hosts) == 0 {
		mutedColor.Fprintln(a.out, "No hosts.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HOSTNAME\tDESCRIPTION\tLAST CONNECTED")
	for _, h := range hosts {
		lc := "-"
		if h.LastConnected != nil && *h.LastConnected != "" {
			lc = *h.LastConnected
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Hostname, h.Description, lc)
	}
	_ = tw.Flush()
}

func (a *App) printRecent(entries []models.RecentEntry) {
	if len(entries) == 0 {
		mutedColor.Fprintln(a.out, "No recent connections.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HOSTNAME\tDESCRIPTION\tWHEN")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Hostname, e.Description, time.Unix(e.Timestamp, 0).Local().Format(time.DateTime))
	}
	_ = tw.Flush()
}

func statusColor(s models.HostStatus) *color.Color {
	switch s {
	case models.HostOnline:
		return okColor
	case models.HostOffline:
		return errColor
	}
	return mutedColor
}
