package tournamentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tournaments table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS tournaments (
					id UUID PRIMARY KEY,
					tournament_key VARCHAR(160) NOT NULL UNIQUE,
					group_id VARCHAR(64) NOT NULL,
					start_date DATE NOT NULL,
					end_date DATE NOT NULL,
					participants JSONB NOT NULL DEFAULT '[]'::jsonb,
					created_by VARCHAR(64) NOT NULL,
					status VARCHAR(16) NOT NULL DEFAULT 'active',
					roster_version BIGINT NOT NULL DEFAULT 0,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT tournaments_window_check CHECK (end_date >= start_date),
					CONSTRAINT tournaments_status_check CHECK (status IN ('active', 'ended'))
				);
			`); err != nil {
				return fmt.Errorf("failed to create tournaments table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_tournaments_one_active_per_group
				ON tournaments (group_id)
				WHERE status = 'active';
			`); err != nil {
				return fmt.Errorf("failed to create active tournament index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tournaments table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS tournaments;`); err != nil {
			return fmt.Errorf("failed to drop tournaments table: %w", err)
		}
		return nil
	})
}
