package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	scoremigrations "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories/migrations"
	tournamentmigrations "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations pairs a module with its schema changes.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules lists every module's migrations in the order they must run.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{Name: "score", Migrations: scoremigrations.Migrations},
		{Name: "tournament", Migrations: tournamentmigrations.Migrations},
	}
}

// NewBunDB opens a Postgres connection pool and verifies it with a ping.
func NewBunDB(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqldb.PingContext(pingCtx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// RunMigrations creates the migration tables and applies every pending module migration.
func RunMigrations(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	modules := Modules()
	if len(modules) == 0 {
		return nil
	}

	// All modules share bun's migration tables; initializing once is enough.
	if err := migrate.NewMigrator(db, modules[0].Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, mod := range modules {
		group, err := migrate.NewMigrator(db, mod.Migrations).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if logger != nil {
			if group.IsZero() {
				logger.InfoContext(ctx, "No new migrations", slog.String("module", mod.Name))
			} else {
				logger.InfoContext(ctx, "Migrations applied", slog.String("module", mod.Name), slog.String("group", group.String()))
			}
		}
	}
	return nil
}
