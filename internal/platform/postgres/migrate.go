package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// gooseLogger forwards goose output to slog. Fatalf does not exit; the
// error is returned to the caller instead.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// MigrationCommand names a goose operation supported by Migrate.
type MigrationCommand string

const (
	MigrateUp      MigrationCommand = "up"
	MigrateDown    MigrationCommand = "down"
	MigrateStatus  MigrationCommand = "status"
	MigrateVersion MigrationCommand = "version"
	MigrateReset   MigrationCommand = "reset"
)

// ParseMigrationCommand validates a command name.
func ParseMigrationCommand(name string) (MigrationCommand, error) {
	switch cmd := MigrationCommand(strings.ToLower(strings.TrimSpace(name))); cmd {
	case MigrateUp, MigrateDown, MigrateStatus, MigrateVersion, MigrateReset:
		return cmd, nil
	default:
		return "", fmt.Errorf("unknown migration command %q", name)
	}
}

// Migrate runs cmd against db using the embedded schema migrations.
func Migrate(ctx context.Context, db *sql.DB, cmd MigrationCommand, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("command", string(cmd)))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFS)
	goose.SetLogger(gooseLogger{log: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch cmd {
	case MigrateUp:
		err = goose.UpContext(ctx, db, "migrations")
	case MigrateDown:
		err = goose.DownContext(ctx, db, "migrations")
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, "migrations")
	case MigrateReset:
		err = goose.ResetContext(ctx, db, "migrations")
	case MigrateVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			log.Info("current migration version", slog.Int64("version", version))
		}
	default:
		return fmt.Errorf("unknown migration command %q", cmd)
	}
	if err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", cmd, err)
	}

	log.Info("migration finished")
	return nil
}

// MigrationNames lists the embedded migration files in apply order.
func MigrationNames() ([]string, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
