package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/rdplaunch/internal/common"
)

// report prints err for the user.
func (a *App) report(err error) {
	if errors.Is(err, errUsage) {
		hintColor.Fprintln(a.out, "Usage:", strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		return
	}
	a.printError(err)
}

// handler adapts an App method to cobra, printing any error it returns.
func (a *App) handler(fn func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd.Context(), args)
		if err != nil {
			a.report(err)
			return reportedError{err}
		}
		return nil
	}
}

// reportedError marks an error that has already been shown to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func (a *App) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rdplaunch",
		Short:         common.ProductName + " opens Remote Desktop sessions with stored domain credentials",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printlnFn(common.ProductName + " shell (type 'help' for commands)")
			runREPL(cmd.Context(), a, a.reader, a.report)
			return nil
		},
	}

	root.AddCommand(
		a.credentialsCmd(),
		a.hostCredentialsCmd(),
		a.hostsCmd(),
		&cobra.Command{
			Use:   "scan <domain> <server>",
			Short: "Replace the host catalog with the servers of a domain",
			Args:  cobra.ExactArgs(2),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.ScanDomain(ctx, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:     "launch <host>",
			Aliases: []string{"connect"},
			Short:   "Open an RDP session to a host",
			Args:    cobra.ExactArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.Launch(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "status <host>",
			Short: "Check whether a host accepts RDP connections",
			Args:  cobra.ExactArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.Status(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "recent",
			Short: "List recent connections",
			Args:  cobra.NoArgs,
			RunE: a.handler(func(ctx context.Context, _ []string) error {
				return a.Recent(ctx)
			}),
		},
		a.resetCmd(),
		&cobra.Command{
			Use:       "autostart [on|off|status]",
			Short:     "Start " + common.ProductName + " at logon",
			Args:      cobra.MaximumNArgs(1),
			ValidArgs: []string{"on", "off", "status"},
			RunE: a.handler(func(ctx context.Context, args []string) error {
				mode := ""
				if len(args) == 1 {
					mode = args[0]
				}
				return a.Autostart(ctx, mode)
			}),
		},
		&cobra.Command{
			Use:   "theme",
			Short: "Show the system light/dark preference",
			Args:  cobra.NoArgs,
			RunE: a.handler(func(ctx context.Context, _ []string) error {
				return a.Theme(ctx)
			}),
		},
	)
	return root
}

func (a *App) credentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the default domain credentials",
		Args:  cobra.NoArgs,
		RunE: a.handler(func(ctx context.Context, _ []string) error {
			return a.ShowDefaultIdentity(ctx)
		}),
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [username]",
			Short: "Save the default credentials (password is prompted)",
			Args:  cobra.MaximumNArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.SaveDefaultIdentity(ctx, first(args))
			}),
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Delete the default credentials",
			Args:  cobra.NoArgs,
			RunE: a.handler(func(ctx context.Context, _ []string) error {
				return a.DeleteDefaultIdentity(ctx)
			}),
		},
	)
	return cmd
}

func (a *App) hostCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host-credentials",
		Short: "Manage per-host credentials",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List hosts with their own credentials",
			Args:  cobra.NoArgs,
			RunE: a.handler(func(ctx context.Context, _ []string) error {
				return a.ListIdentityHosts(ctx)
			}),
		},
		&cobra.Command{
			Use:   "show <host>",
			Short: "Show the credentials stored for a host",
			Args:  cobra.ExactArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.ShowHostIdentity(ctx, args[0])
			}),
		},
		&cobra.Command{
			Use:   "set <host> [username]",
			Short: "Save credentials for a host (password is prompted)",
			Args:  cobra.RangeArgs(1, 2),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.SaveHostIdentity(ctx, args[0], first(args[1:]))
			}),
		},
		&cobra.Command{
			Use:   "delete <host>",
			Short: "Delete the credentials stored for a host",
			Args:  cobra.ExactArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.DeleteHostIdentity(ctx, args[0])
			}),
		},
	)
	return cmd
}

func (a *App) hostsCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "List and edit the host catalog",
		Args:  cobra.NoArgs,
		RunE: a.handler(func(ctx context.Context, _ []string) error {
			return a.ListHosts(ctx)
		}),
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every host",
		Args:  cobra.NoArgs,
		RunE: a.handler(func(ctx context.Context, _ []string) error {
			return a.DeleteAllHosts(ctx, yes)
		}),
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "search <text>",
			Short: "Find hosts by hostname or description",
			Args:  cobra.MinimumNArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.SearchHosts(ctx, strings.Join(args, " "))
			}),
		},
		&cobra.Command{
			Use:   "add <host> [description]",
			Short: "Add or update a host",
			Args:  cobra.MinimumNArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.AddHost(ctx, args[0], strings.Join(args[1:], " "))
			}),
		},
		&cobra.Command{
			Use:   "delete <host>",
			Short: "Remove a host",
			Args:  cobra.ExactArgs(1),
			RunE: a.handler(func(ctx context.Context, args []string) error {
				return a.DeleteHost(ctx, args[0])
			}),
		},
		clearCmd,
	)
	return cmd
}

func (a *App) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored credentials, hosts, history and RDP files",
		Args:  cobra.NoArgs,
		RunE: a.handler(func(ctx context.Context, _ []string) error {
			return a.Reset(ctx, yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
