package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn(ctx context.Context) bool
	report(err error)

	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Tests(ctx context.Context) error
	Take(ctx context.Context, id int64) error
	Words(ctx context.Context, search string) error
	AddWord(ctx context.Context) error
	EditWord(ctx context.Context, id int64) error
	DeleteWord(ctx context.Context, id int64) error
}

const (
	helpSignedOut = "Available commands: signup, signin, help, exit"
	helpSignedIn  = "Available commands: tests, take <id>, words [search], addword, editword <id>, delword <id>, whoami, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the VocabDay CLI.
//
// It reads a line, parses the first token as the command and dispatches to
// methods on a. Commands share reader with the REPL so interactive prompts
// (quiz answers, word fields) consume the same input stream. The loop exits
// on EOF or when the user types "exit" or "quit". Command errors are
// reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "vocab%s> ", statusFn(ctx))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isSignedIn(ctx) {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}

		case "signup":
			cmdErr = a.SignUp(ctx)

		case "signin":
			cmdErr = a.SignIn(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "tests":
			cmdErr = a.Tests(ctx)

		case "take":
			if id, ok := parseID(args); ok {
				cmdErr = a.Take(ctx, id)
			} else {
				fmt.Fprintln(w, "Usage: take <id>")
			}

		case "words":
			cmdErr = a.Words(ctx, strings.Join(args, " "))

		case "addword":
			cmdErr = a.AddWord(ctx)

		case "editword":
			if id, ok := parseID(args); ok {
				cmdErr = a.EditWord(ctx, id)
			} else {
				fmt.Fprintln(w, "Usage: editword <id>")
			}

		case "delword":
			if id, ok := parseID(args); ok {
				cmdErr = a.DeleteWord(ctx, id)
			} else {
				fmt.Fprintln(w, "Usage: delword <id>")
			}

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.report(cmdErr)
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	return id, err == nil && id > 0
}
