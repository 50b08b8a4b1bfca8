package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/bizz/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "BIZZ_DB_DSN"

type options struct {
	up       bool
	down     bool
	steps    int
	version  bool
	force    int
	forceSet bool
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var opts options
	dsn := flag.String("dsn", "", "Database connection string (default $"+envDSN+", then the [database] config)")
	flag.BoolVar(&opts.up, "up", false, "Apply all pending migrations")
	flag.BoolVar(&opts.down, "down", false, "Revert all migrations")
	flag.IntVar(&opts.steps, "steps", 0, "Number of migrations (positive=up, negative=down)")
	flag.BoolVar(&opts.version, "version", false, "Print current migration version")
	flag.IntVar(&opts.force, "force", -1, "Force set version after a failed migration")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			opts.forceSet = true
		}
	})

	if *dsn == "" {
		*dsn = os.Getenv(envDSN)
	}
	if *dsn == "" {
		db, err := config.LoadDatabase()
		if err != nil {
			logger.Error("database config failed", "error", err)
			os.Exit(1)
		}
		*dsn = db.URL()
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		logger.Error("migration source failed", "error", err)
		os.Exit(1)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, *dsn)
	if err != nil {
		logger.Error("migrator init failed", "error", err)
		os.Exit(1)
	}

	err = run(m, opts, logger)
	m.Close()
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, opts options, logger *slog.Logger) error {
	switch {
	case opts.version:
		v, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		logger.Info("schema version", "version", v, "dirty", dirty)
	case opts.forceSet:
		if err := m.Force(opts.force); err != nil {
			return fmt.Errorf("force version %d: %w", opts.force, err)
		}
		logger.Info("version forced", "version", opts.force)
	case opts.up:
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	case opts.down:
		if err := ignoreNoChange(m.Down()); err != nil {
			return fmt.Errorf("revert migrations: %w", err)
		}
		logger.Info("migrations reverted")
	case opts.steps != 0:
		if err := ignoreNoChange(m.Steps(opts.steps)); err != nil {
			return fmt.Errorf("step %d: %w", opts.steps, err)
		}
		logger.Info("migration steps applied", "steps", opts.steps)
	default:
		fmt.Println("usage: migrate [-dsn <connection-string>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
