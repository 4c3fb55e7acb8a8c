package scoremigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the score module's schema changes.
var Migrations = migrate.NewMigrations()
