// Command notes is a terminal client for the notes API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"notesvc/internal/client"
)

const usage = `usage: notes [flags] <command> [args]

commands:
  signup <email>     register a new user (password is prompted)
  login <email>      log in and save the token
  logout             forget the saved token
  whoami             show the logged-in user and token expiry
  list [-q text]     list notes, oldest first, optionally filtered
  add <text...>      create a note
  rm <id>            delete a note

flags:
`

func main() {
	apiURL := flag.String("api", envOr("NOTES_API_URL", "http://localhost:5000"), "notes API base URL")
	tokenPath := flag.String("token-file", envOr("NOTES_TOKEN_FILE", client.DefaultTokenPath()), "where the login token is kept")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	api, err := client.New(*apiURL)
	if err != nil {
		log.WithError(err).Fatal("configure client")
	}

	app := &App{
		api:    api,
		tokens: client.TokenFile{Path: *tokenPath},
		in:     os.Stdin,
		out:    os.Stdout,
		log:    log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		log.Error(err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
