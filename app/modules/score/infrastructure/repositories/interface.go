package scoredb

import (
	"context"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// Repository defines the contract for daily score persistence.
type Repository interface {
	// UpsertScore stores the score, replacing any earlier score for the same participant and day.
	UpsertScore(ctx context.Context, db bun.IDB, score *DailyScore) error

	// GetScore returns the score for one participant and day, or ErrNotFound.
	GetScore(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, day time.Time) (*DailyScore, error)

	// GetScoresInRange returns the participant's scores in [start, end], oldest first.
	GetScoresInRange(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, start, end time.Time) ([]DailyScore, error)
}
