package scoreservice

import (
	"context"
	"time"

	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// FakeScoreRepository provides a programmable stub for the scoredb.Repository interface.
type FakeScoreRepository struct {
	trace []string

	UpsertScoreFunc      func(ctx context.Context, db bun.IDB, score *scoredb.DailyScore) error
	GetScoreFunc         func(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, day time.Time) (*scoredb.DailyScore, error)
	GetScoresInRangeFunc func(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, start, end time.Time) ([]scoredb.DailyScore, error)

	Upserted []scoredb.DailyScore
}

// NewFakeScoreRepository initializes a new FakeScoreRepository with an empty trace.
func NewFakeScoreRepository() *FakeScoreRepository {
	return &FakeScoreRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepository) UpsertScore(ctx context.Context, db bun.IDB, score *scoredb.DailyScore) error {
	f.record("UpsertScore")
	if f.UpsertScoreFunc != nil {
		if err := f.UpsertScoreFunc(ctx, db, score); err != nil {
			return err
		}
	}
	f.Upserted = append(f.Upserted, *score)
	return nil
}

func (f *FakeScoreRepository) GetScore(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, day time.Time) (*scoredb.DailyScore, error) {
	f.record("GetScore")
	if f.GetScoreFunc != nil {
		return f.GetScoreFunc(ctx, db, participantID, day)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepository) GetScoresInRange(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, start, end time.Time) ([]scoredb.DailyScore, error) {
	f.record("GetScoresInRange")
	if f.GetScoresInRangeFunc != nil {
		return f.GetScoresInRangeFunc(ctx, db, participantID, start, end)
	}
	return nil, nil
}

// Ensure the fake actually satisfies the interface
var _ scoredb.Repository = (*FakeScoreRepository)(nil)
