package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/cmlabs-hris/leave-ledger-go/internal/config"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-ledger-go/migrations"
	"github.com/golang-migrate/migrate/v4"
)

const usage = `usage: migrate <command>

commands:
  up          apply all pending migrations
  down [n]    roll back n migrations (default 1)
  drop        drop every table
  version     print the current version
`

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		slog.Error("migration failed", slog.String("command", flag.Arg(0)), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m, err := database.NewMigrator(migrations.FS, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(args) > 0 {
			steps, err = strconv.Atoi(args[0])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
		}
		err = m.Steps(-steps)
	case "drop":
		err = m.Drop()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			return verr
		}
		slog.Info("migration version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	slog.Info("migration complete", slog.String("command", command))
	return nil
}
