package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Extend(ctx context.Context, args []string) error
	Revoke(ctx context.Context, args []string) error
	Reinstate(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Expired(ctx context.Context) error
	Clear(ctx context.Context) error
}

const helpText = "Available commands: list, show <id>, add, extend <id> [1d|1w|1m|3m], revoke <id>, reinstate <id>, edit <id>, expired, clear, exit"

// runREPL reads one command per line from r and dispatches it to a. It
// returns on EOF or when the user types "exit" or "quit". Handler errors are
// reported by the handlers themselves; the loop just keeps going.
func runREPL(ctx context.Context, a execIface, r *bufio.Reader, w io.Writer, prompt bool) {
	for {
		if prompt {
			fmt.Fprint(w, "useray> ")
		}
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, helpText)
		case "l", "list":
			_ = a.List(ctx)
		case "show":
			_ = a.Show(ctx, args)
		case "add":
			_ = a.Add(ctx)
		case "extend":
			_ = a.Extend(ctx, args)
		case "revoke":
			_ = a.Revoke(ctx, args)
		case "reinstate":
			_ = a.Reinstate(ctx, args)
		case "edit":
			_ = a.Edit(ctx, args)
		case "expired":
			_ = a.Expired(ctx)
		case "clear":
			_ = a.Clear(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
