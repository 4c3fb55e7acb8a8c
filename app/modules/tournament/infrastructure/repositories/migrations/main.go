package tournamentmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the tournament module's schema changes.
var Migrations = migrate.NewMigrations()
