package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/clubgate/backend/internal/infrastructure/config"
	"github.com/clubgate/backend/internal/infrastructure/logger"
	"github.com/clubgate/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	path, err := resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Could not resolve migrations path", zap.Error(err))
	}

	log.Info("Migration tool",
		zap.String("command", command),
		zap.String("migrations_path", path),
	)

	switch command {
	case "create":
		err = runCreate(path, args[1:], log)
	case "list":
		err = runList(path, log)
	case "up", "down", "step", "goto", "version", "force", "drop":
		err = runAgainstDatabase(command, path, args[1:], log)
	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Command failed", zap.String("command", command), zap.Error(err))
	}
}

// resolveMigrationsPath picks an explicit -path, a ./migrations directory, or
// a migrations directory next to the installed binary, in that order
func resolveMigrationsPath(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}

	if _, err := os.Stat(defaultMigrationsPath); err == nil {
		return filepath.Abs(defaultMigrationsPath)
	}

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Abs(candidate)
		}
	}

	return filepath.Abs(defaultMigrationsPath)
}

func runCreate(path string, args []string, log *zap.Logger) error {
	if len(args) == 0 {
		return errors.New("migration name required: migrate create <name> [description]")
	}
	name := args[0]
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(path, name, description)
	if err != nil {
		return err
	}

	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func runList(path string, log *zap.Logger) error {
	names, err := migration.ListMigrations(path)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		log.Info("No migrations found")
		return nil
	}

	log.Info("Available migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
	return nil
}

func runAgainstDatabase(command, path string, args []string, log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch command {
	case "up":
		return m.Up()

	case "down":
		return m.Down()

	case "step":
		if len(args) == 0 {
			return errors.New("step count required: migrate step <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)

	case "goto":
		if len(args) == 0 {
			return errors.New("version required: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(version))

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}
		return nil

	case "force":
		if len(args) == 0 {
			return errors.New("version required: migrate force <version>")
		}
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(version)

	case "drop":
		if !hasConfirmFlag(args) {
			return errors.New("drop destroys all database objects; rerun as 'migrate drop -confirm'")
		}
		return m.Drop()
	}

	return fmt.Errorf("unhandled command %q", command)
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`ClubGate schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show current schema version
  force <version>       Stamp a version without running migrations
  drop -confirm         Drop all database objects
  create <name> [desc]  Scaffold a new up/down migration pair
  list                  List available migrations

Flags:
  -path string          Path to migrations directory (default: ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  CLUBGATE_DATABASE_HOST, CLUBGATE_DATABASE_PORT, CLUBGATE_DATABASE_USER,
  CLUBGATE_DATABASE_PASSWORD, CLUBGATE_DATABASE_DBNAME, CLUBGATE_DATABASE_SSLMODE

Examples:
  migrate up
  migrate step -1
  migrate create add_guests_table "guest contact fields and status"
  migrate version`)
}
