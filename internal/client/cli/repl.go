package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Fprintln

const helpText = `Available commands:
  list [page]      browse Pokémon
  show <name>      Pokémon details
  type <name>      type details
  fav <name>       add to favorites
  unfav <name>     remove from favorites
  isfav <name>     check a favorite
  favs [page]      list favorites
  refresh          reload the current favorites page
  signup | login | logout | whoami
  consent [on|off] show or set cookie consent
  exit | quit`

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Type(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Unfav(ctx context.Context, args []string) error
	IsFav(ctx context.Context, args []string) error
	Favs(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Consent(ctx context.Context, args []string) error
}

// runREPL reads one command per line from r and dispatches it until EOF,
// "exit" or "quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "pokodex %s> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
			printlnFn(w, helpText)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "type":
			cmdErr = a.Type(ctx, args)
		case "fav":
			cmdErr = a.Fav(ctx, args)
		case "unfav":
			cmdErr = a.Unfav(ctx, args)
		case "isfav":
			cmdErr = a.IsFav(ctx, args)
		case "favs":
			cmdErr = a.Favs(ctx, args)
		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "signup", "register":
			cmdErr = a.SignUp(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "consent":
			cmdErr = a.Consent(ctx, args)
		case "exit", "quit":
			printlnFn(w, "Bye!")
			return
		default:
			printlnFn(w, "Unknown command:", cmd)
		}
		if cmdErr != nil {
			printlnFn(w, "Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
