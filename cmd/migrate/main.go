package main

import (
	"database/sql"
	"flag"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/config"

	_ "github.com/lib/pq"
)

const (
	dialect      = "postgres"
	migrationDir = "./db/migrations"
)

func main() {
	var (
		downFlag   = flag.Bool("down", false, "Run migrations down instead of up")
		statusFlag = flag.Bool("status", false, "Print migration status and exit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("cannot load config: %v", err)
	}

	if cfg.DBConn == "" {
		logrus.Fatal("DB_CONN environment variable is required")
	}

	if err := runMigrations(cfg.DBConn, *downFlag, *statusFlag); err != nil {
		logrus.Fatalf("Migration failed: %+v", err)
	}
}

func runMigrations(creds string, migrateDown, status bool) error {
	db, err := sql.Open(dialect, creds)
	if err != nil {
		return errors.Errorf("cannot open %s db connection: %v", dialect, err)
	}
	defer db.Close()

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Errorf("cannot set %s dialect: %v", dialect, err)
	}

	switch {
	case status:
		if err := goose.Status(db, migrationDir); err != nil {
			return errors.Errorf("cannot get %s migrations status: %v", dialect, err)
		}
		return nil

	case migrateDown:
		if err := goose.Down(db, migrationDir); err != nil {
			return errors.Errorf("cannot down %s migrations: %v", dialect, err)
		}
		logrus.Info("Migrations rolled back successfully")
		return nil
	}

	if err := goose.Up(db, migrationDir, goose.WithAllowMissing()); err != nil {
		return errors.Errorf("cannot up %s migrations: %v", dialect, err)
	}
	logrus.Info("Migrations applied successfully")
	return nil
}
