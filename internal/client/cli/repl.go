package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	show(ctx context.Context)
	set(ctx context.Context, args []string)
	password(ctx context.Context)
	avatar(ctx context.Context, args []string)
	submit(ctx context.Context)
	reload(ctx context.Context)
	done() bool
}

func (a *App) done() bool {
	return a.sessionGone.Load()
}

func (a *App) repl(ctx context.Context) {
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

// runREPL reads commands from scanner and dispatches to a until EOF, an
// explicit exit, or a dead session.
//
// Commands:
//
//	show               print the current form, errors and status
//	set <field> <v>    edit username, email or avatar
//	password           set a new password (prompted, no echo)
//	avatar <path>      upload a local image and use it as the avatar
//	submit             send pending changes
//	reload             drop local state and fetch the profile again
//	help               list commands
//	exit | quit        leave the program
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		if a.done() {
			return
		}
		fmt.Print("parley> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: show, set <field> <value>, password, avatar <path>, submit, reload, exit")
		case "show":
			a.show(ctx)
		case "set":
			a.set(ctx, args)
		case "password":
			a.password(ctx)
		case "avatar":
			a.avatar(ctx, args)
		case "submit":
			a.submit(ctx)
		case "reload":
			a.reload(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command: " + cmd)
		}
	}
}
