package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	SaveDefaultIdentity(ctx context.Context, username string) error
	ShowDefaultIdentity(ctx context.Context) error
	DeleteDefaultIdentity(ctx context.Context) error
	SaveHostIdentity(ctx context.Context, hostname, username string) error
	ShowHostIdentity(ctx context.Context, hostname string) error
	DeleteHostIdentity(ctx context.Context, hostname string) error
	ListIdentityHosts(ctx context.Context) error

	ListHosts(ctx context.Context) error
	SearchHosts(ctx context.Context, query string) error
	AddHost(ctx context.Context, hostname, description string) error
	DeleteHost(ctx context.Context, hostname string) error
	DeleteAllHosts(ctx context.Context, confirmed bool) error
	ScanDomain(ctx context.Context, domain, server string) error

	Launch(ctx context.Context, hostname string) error
	Status(ctx context.Context, hostname string) error
	Recent(ctx context.Context) error

	Reset(ctx context.Context, confirmed bool) error
	Autostart(ctx context.Context, mode string) error
	Theme(ctx context.Context) error
}

const replHelp = `Available commands:
  hosts | search <text> | add <host> [description] | rm <host> | clear
  connect <host> | status <host> | recent
  scan <domain> <server>
  creds [set [user] | rm]
  hostcreds list | hostcreds <host> [set [user] | rm]
  autostart [on|off|status] | theme | reset
  help | exit`

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Handler errors go to report; the loop keeps going.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, report func(error)) {
	for {
		printlnFn("rdp> ")
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			report(err)
		}
	}
}

var errUsage = errors.New("usage")

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch cmd {
	case "help", "?":
		printlnFn(replHelp)
		return nil

	case "hosts", "ls":
		return a.ListHosts(ctx)
	case "search", "find":
		return a.SearchHosts(ctx, strings.Join(args, " "))
	case "add":
		if len(args) == 0 {
			return usage("add <host> [description]")
		}
		return a.AddHost(ctx, args[0], strings.Join(args[1:], " "))
	case "rm", "del":
		if len(args) != 1 {
			return usage("rm <host>")
		}
		return a.DeleteHost(ctx, args[0])
	case "clear":
		return a.DeleteAllHosts(ctx, false)

	case "connect", "c":
		if len(args) != 1 {
			return usage("connect <host>")
		}
		return a.Launch(ctx, args[0])
	case "status":
		if len(args) != 1 {
			return usage("status <host>")
		}
		return a.Status(ctx, args[0])
	case "recent":
		return a.Recent(ctx)

	case "scan":
		if len(args) != 2 {
			return usage("scan <domain> <server>")
		}
		return a.ScanDomain(ctx, args[0], args[1])

	case "creds":
		switch arg(0) {
		case "":
			return a.ShowDefaultIdentity(ctx)
		case "set":
			return a.SaveDefaultIdentity(ctx, arg(1))
		case "rm":
			return a.DeleteDefaultIdentity(ctx)
		}
		return usage("creds [set [user] | rm]")

	case "hostcreds":
		host := arg(0)
		if host == "" {
			return usage("hostcreds list | hostcreds <host> [set [user] | rm]")
		}
		if host == "list" {
			return a.ListIdentityHosts(ctx)
		}
		switch arg(1) {
		case "":
			return a.ShowHostIdentity(ctx, host)
		case "set":
			return a.SaveHostIdentity(ctx, host, arg(2))
		case "rm":
			return a.DeleteHostIdentity(ctx, host)
		}
		return usage("hostcreds <host> [set [user] | rm]")

	case "autostart":
		return a.Autostart(ctx, arg(0))
	case "theme":
		return a.Theme(ctx)
	case "reset":
		return a.Reset(ctx, false)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}
