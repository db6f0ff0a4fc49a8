package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rdplaunch/internal/apperr"
	"github.com/dmitrijs2005/rdplaunch/internal/common"
	"github.com/dmitrijs2005/rdplaunch/internal/models"
)

// readIdentity prompts for a username (unless given) and a password.
func (a *App) readIdentity(username string) (models.Identity, error) {
	if username == "" {
		u, err := GetSimpleText(a.reader, `Username (DOMAIN\user, user@domain or user)`, a.out)
		if err != nil {
			return models.Identity{}, err
		}
		username = u
	}
	pw, err := GetPassword(a.reader, a.out)
	if err != nil {
		return models.Identity{}, err
	}
	defer common.WipeByteArray(pw)
	return models.Identity{Username: username, Secret: string(pw)}, nil
}

func (a *App) printIdentity(label string, id *models.Identity) {
	if id == nil {
		mutedColor.Fprintf(a.out, "No %s stored.\n", strings.ToLower(label))
		return
	}
	fmt.Fprintf(a.out, "%s: %s (password set)\n", label, id.Username)
}

func (a *App) SaveDefaultIdentity(ctx context.Context, username string) error {
	id, err := a.readIdentity(username)
	if err != nil {
		return err
	}
	if err := a.svc.Identities.SaveDefault(ctx, id); err != nil {
		return err
	}
	a.ok("Default credentials saved for %s", id.Username)
	return nil
}

func (a *App) ShowDefaultIdentity(ctx context.Context) error {
	id, err := a.svc.Identities.GetDefault(ctx)
	if err != nil {
		return err
	}
	a.printIdentity("Default credentials", id)
	return nil
}

func (a *App) DeleteDefaultIdentity(ctx context.Context) error {
	if err := a.svc.Identities.DeleteDefault(ctx); err != nil {
		return err
	}
	a.ok("Default credentials deleted")
	return nil
}

func (a *App) SaveHostIdentity(ctx context.Context, hostname, username string) error {
	id, err := a.readIdentity(username)
	if err != nil {
		return err
	}
	if err := a.svc.Identities.SaveForHost(ctx, hostname, id); err != nil {
		return err
	}
	a.ok("Credentials for %s saved", hostname)
	return nil
}

func (a *App) ShowHostIdentity(ctx context.Context, hostname string) error {
	id, err := a.svc.Identities.GetForHost(ctx, hostname)
	if err != nil {
		return err
	}
	a.printIdentity("Credentials for "+hostname, id)
	return nil
}

func (a *App) DeleteHostIdentity(ctx context.Context, hostname string) error {
	if err := a.svc.Identities.DeleteForHost(ctx, hostname); err != nil {
		return err
	}
	a.ok("Credentials for %s deleted", hostname)
	return nil
}

func (a *App) ListIdentityHosts(ctx context.Context) error {
	hosts, err := a.svc.Identities.ListHosts(ctx)
	if err != nil {
		return err
	}
	if len(hosts) == 0 {
		mutedColor.Fprintln(a.out, "No hosts with stored credentials.")
		return nil
	}
	for _, h := range hosts {
		fmt.Fprintln(a.out, h)
	}
	return nil
}

func (a *App) ListHosts(ctx context.Context) error {
	hosts, err := a.svc.Hosts.GetAll(ctx)
	if err != nil {
		return err
	}
	a.printHosts(hosts)
	return nil
}

func (a *App) SearchHosts(ctx context.Context, query string) error {
	hosts, err := a.svc.Hosts.Search(ctx, query)
	if err != nil {
		return err
	}
	a.printHosts(hosts)
	return nil
}

func (a *App) AddHost(ctx context.Context, hostname, description string) error {
	return a.svc.Hosts.Save(ctx, models.Host{Hostname: hostname, Description: description})
}

func (a *App) DeleteHost(ctx context.Context, hostname string) error {
	return a.svc.Hosts.Delete(ctx, hostname)
}

func (a *App) DeleteAllHosts(ctx context.Context, confirmed bool) error {
	if !confirmed && !Confirm(a.reader, "Delete every host from the catalog?", a.out) {
		mutedColor.Fprintln(a.out, "Cancelled.")
		return nil
	}
	return a.svc.Hosts.DeleteAll(ctx)
}

func (a *App) ScanDomain(ctx context.Context, domain, server string) error {
	res, err := a.svc.Hosts.Scan(ctx, domain, server)
	if err != nil {
		return err
	}
	a.ok("Found %d hosts in %s", res.Count, domain)
	return nil
}

func (a *App) Launch(ctx context.Context, hostname string) error {
	res, err := a.svc.Connections.Launch(ctx, hostname)
	if err != nil {
		return err
	}
	if res.Provisioned {
		mutedColor.Fprintf(a.out, "Stored single sign-on credentials for %s\n", res.Hostname)
	}
	return nil
}

func (a *App) Status(ctx context.Context, hostname string) error {
	s := a.svc.Connections.Status(ctx, hostname)
	fmt.Fprintf(a.out, "%s: ", hostname)
	statusColor(s).Fprintln(a.out, string(s))
	return nil
}

func (a *App) Recent(ctx context.Context) error {
	entries, err := a.svc.Connections.Recent(ctx)
	if err != nil {
		return err
	}
	a.printRecent(entries)
	return nil
}

func (a *App) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed && !Confirm(a.reader, "Delete all stored credentials, hosts and history?", a.out) {
		mutedColor.Fprintln(a.out, "Cancelled.")
		return nil
	}
	report := a.svc.Reset.Reset(ctx)
	fmt.Fprint(a.out, report.String())
	if !report.OK() {
		return apperr.Other("reset finished with errors", nil)
	}
	return nil
}

func (a *App) Autostart(ctx context.Context, mode string) error {
	switch strings.ToLower(mode) {
	case "on":
		if err := a.svc.System.EnableAutostart(ctx); err != nil {
			return err
		}
		a.ok("Autostart enabled")
	case "off":
		if err := a.svc.System.DisableAutostart(ctx); err != nil {
			return err
		}
		a.ok("Autostart disabled")
	case "", "status":
		cmd, on, err := a.svc.System.AutostartStatus(ctx)
		if err != nil {
			return err
		}
		if on {
			fmt.Fprintf(a.out, "Autostart: on (%s)\n", cmd)
		} else {
			fmt.Fprintln(a.out, "Autostart: off")
		}
	default:
		return apperr.Other(fmt.Sprintf("unknown autostart mode %q (want on, off or status)", mode), nil)
	}
	return nil
}

func (a *App) Theme(ctx context.Context) error {
	t, err := a.svc.System.Theme(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Theme: %s\n", t)
	return nil
}
