package main

import (
	"context"
	"errors"
	"flag"

	"github.com/sirupsen/logrus"

	"notesvc/internal/auth"
	"notesvc/internal/config"
	"notesvc/internal/db"
	apperrors "notesvc/internal/errors"
	"notesvc/internal/logging"
	"notesvc/internal/repository"
	"notesvc/internal/service"
)

var demoNotes = []string{
	"Welcome to your notes.",
	"Notes are listed oldest first.",
	"Delete this note with: notes rm <id>",
}

func main() {
	email := flag.String("email", "demo@example.com", "demo user email")
	password := flag.String("password", "demo-password", "demo user password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, "text")
	log.Info("Starting seed script...")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	log.Info("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	credentials := service.NewCredentialStore(userRepo, nil, log)
	authService := service.NewAuthService(credentials, auth.NewJWTService(cfg.JWTSecret), log)
	noteService := service.NewNoteService(repository.NewNoteRepository(gormDB), log, nil)

	if err := seed(context.Background(), log, authService, noteService, *email, *password); err != nil {
		log.WithError(err).Fatal("seed failed")
	}
}

// seed creates the demo user and its notes. An existing user is left as is,
// so running the script twice does not duplicate notes.
func seed(ctx context.Context, log logrus.FieldLogger, authSvc service.AuthService, notes service.NoteService, email, password string) error {
	userID, err := authSvc.Signup(ctx, email, password)
	if errors.Is(err, apperrors.ErrDuplicateUser) {
		log.WithField("email", email).Info("demo user already exists, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	created := 0
	for _, content := range demoNotes {
		if _, err := notes.Create(ctx, userID, content); err != nil {
			return err
		}
		created++
	}

	log.WithFields(logrus.Fields{
		"email":   email,
		"user_id": userID,
		"notes":   created,
	}).Info("Seed completed")
	return nil
}
