package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating daily_scores table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS daily_scores (
					participant_id VARCHAR(64) NOT NULL,
					score_date DATE NOT NULL,
					score INTEGER NOT NULL CHECK (score >= 0),
					attempts INTEGER NOT NULL CHECK (attempts >= 0),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (participant_id, score_date)
				);
			`); err != nil {
				return fmt.Errorf("failed to create daily_scores table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping daily_scores table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS daily_scores;`); err != nil {
			return fmt.Errorf("failed to drop daily_scores table: %w", err)
		}
		return nil
	})
}
