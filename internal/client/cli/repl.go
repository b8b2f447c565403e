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

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isReady() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	List(ctx context.Context) error
	Mine(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

func helpText(a execIface) string {
	switch {
	case !a.isLoggedIn():
		return "Available commands: register, login, (l)ist, show <id>, exit"
	case !a.isReady():
		return "Available commands: whoami, profile, (l)ist, mine, show <id>, new, logout, exit (edit and delete once the session is restored)"
	default:
		return "Available commands: whoami, profile, (l)ist, mine, show <id>, new, edit <id>, delete <id>, logout, exit"
	}
}

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit"/"quit" or ctx cancellation.
//
// Command errors are reported by the handlers themselves and are not fatal
// to the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("blog %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a))
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "mine":
			_ = a.Mine(ctx)
		case "show":
			_ = a.Show(ctx, args)
		case "new":
			_ = a.New(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
