package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"notesvc/internal/client"
)

var errUsage = errors.New("usage")

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// App runs one CLI command.
type App struct {
	api    *client.Client
	tokens client.TokenFile
	in     io.Reader
	out    io.Writer
	log    logrus.FieldLogger
	now    func() time.Time
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	a.log.WithField("command", cmd).Debug("running")

	switch cmd {
	case "signup":
		return a.signup(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "list", "ls":
		return a.list(ctx, rest)
	case "add":
		return a.add(ctx, rest)
	case "rm", "delete":
		return a.remove(ctx, rest)
	default:
		return errUsage
	}
}

func (a *App) signup(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	password, err := a.password()
	if err != nil {
		return err
	}
	msg, err := a.api.Signup(ctx, args[0], password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	password, err := a.password()
	if err != nil {
		return err
	}
	token, err := a.api.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", args[0])
	return nil
}

func (a *App) logout() error {
	if err := a.tokens.Remove(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) whoami() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	info, err := client.DecodeToken(token)
	if err != nil {
		return err
	}
	now := a.clock()
	if info.Expired(now) {
		fmt.Fprintf(a.out, "%s (token expired at %s, log in again)\n", info.Email, info.ExpiresAt.Local().Format(time.RFC3339))
		return nil
	}
	fmt.Fprintf(a.out, "%s (token valid for %s)\n", info.Email, info.ExpiresAt.Sub(now).Truncate(time.Second))
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	query := fs.String("q", "", "only show notes containing this text")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := a.authorize(); err != nil {
		return err
	}

	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		return err
	}
	notes = client.Filter(notes, *query)
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Content)
	}
	return w.Flush()
}

func (a *App) add(ctx context.Context, args []string) error {
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		return errors.New("note text is empty")
	}
	if err := a.authorize(); err != nil {
		return err
	}
	note, err := a.api.CreateNote(ctx, content)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, note.ID)
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.authorize(); err != nil {
		return err
	}
	if err := a.api.DeleteNote(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note deleted")
	return nil
}

// authorize loads the saved token into the API client.
func (a *App) authorize() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	a.api.SetToken(token)
	return nil
}

// password reads a password without echo from a terminal, or one line from
// piped input.
func (a *App) password() (string, error) {
	if f, ok := a.in.(*os.File); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, "Password: ")
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *App) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}
