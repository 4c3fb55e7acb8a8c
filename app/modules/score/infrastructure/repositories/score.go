package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// UpsertScore stores the score, replacing any earlier score for the same participant and day.
func (r *Impl) UpsertScore(ctx context.Context, db bun.IDB, score *DailyScore) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	score.ScoreDate = sharedtypes.Day(score.ScoreDate)
	if score.CreatedAt.IsZero() {
		score.CreatedAt = now
	}
	score.UpdatedAt = now

	_, err := db.NewInsert().
		Model(score).
		On("CONFLICT (participant_id, score_date) DO UPDATE").
		Set("score = EXCLUDED.score").
		Set("attempts = EXCLUDED.attempts").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert score for %s on %s: %w",
			score.ParticipantID, sharedtypes.FormatDay(score.ScoreDate), err)
	}
	return nil
}

// GetScore returns the score for one participant and day.
func (r *Impl) GetScore(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, day time.Time) (*DailyScore, error) {
	db = r.resolveDB(db)
	score := new(DailyScore)
	err := db.NewSelect().
		Model(score).
		Where("participant_id = ?", participantID).
		Where("score_date = ?::date", sharedtypes.FormatDay(day)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	return score, nil
}

// GetScoresInRange returns the participant's scores in [start, end], oldest first.
func (r *Impl) GetScoresInRange(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, start, end time.Time) ([]DailyScore, error) {
	db = r.resolveDB(db)
	var scores []DailyScore
	err := db.NewSelect().
		Model(&scores).
		Where("participant_id = ?", participantID).
		Where("score_date BETWEEN ?::date AND ?::date", sharedtypes.FormatDay(start), sharedtypes.FormatDay(end)).
		Order("score_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores in range: %w", err)
	}
	return scores, nil
}
