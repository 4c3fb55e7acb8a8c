package leaderboardservice

import (
	"context"
	"sync"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// FakeTournamentReader returns a fixed tournament, or a programmed result.
type FakeTournamentReader struct {
	Tournament *tournamentdb.Tournament

	GetActiveTournamentFunc func(ctx context.Context, groupID sharedtypes.GroupID) (tournamentservice.TournamentOperationResult, error)
}

func (f *FakeTournamentReader) GetActiveTournament(ctx context.Context, groupID sharedtypes.GroupID) (tournamentservice.TournamentOperationResult, error) {
	if f.GetActiveTournamentFunc != nil {
		return f.GetActiveTournamentFunc(ctx, groupID)
	}
	if f.Tournament == nil || f.Tournament.GroupID != groupID {
		return results.FailureResult[*tournamentdb.Tournament, error](tournamentservice.ErrNoActiveTournament), nil
	}
	return results.SuccessResult[*tournamentdb.Tournament, error](f.Tournament), nil
}

// FakeScoreRepository is an in-memory score store that is safe for concurrent readers.
type FakeScoreRepository struct {
	mu     sync.Mutex
	trace  []string
	scores map[sharedtypes.ParticipantID][]scoredb.DailyScore

	GetScoreFunc         func(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, day time.Time) (*scoredb.DailyScore, error)
	GetScoresInRangeFunc func(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, start, end time.Time) ([]scoredb.DailyScore, error)
}

// NewFakeScoreRepository initializes an empty FakeScoreRepository.
func NewFakeScoreRepository() *FakeScoreRepository {
	return &FakeScoreRepository{
		trace:  []string{},
		scores: map[sharedtypes.ParticipantID][]scoredb.DailyScore{},
	}
}

// Seed stores consecutive daily scores for a participant starting at first.
func (f *FakeScoreRepository) Seed(participantID sharedtypes.ParticipantID, first time.Time, scores ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, score := range scores {
		f.scores[participantID] = append(f.scores[participantID], scoredb.DailyScore{
			ParticipantID: participantID,
			ScoreDate:     first.AddDate(0, 0, i),
			Score:         sharedtypes.Score(score),
			Attempts:      min(score, sharedtypes.MaxAttempts),
		})
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepository) UpsertScore(ctx context.Context, db bun.IDB, score *scoredb.DailyScore) error {
	f.record("UpsertScore")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[score.ParticipantID] = append(f.scores[score.ParticipantID], *score)
	return nil
}

func (f *FakeScoreRepository) GetScore(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, day time.Time) (*scoredb.DailyScore, error) {
	f.record("GetScore")
	if f.GetScoreFunc != nil {
		return f.GetScoreFunc(ctx, db, participantID, day)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.scores[participantID] {
		if s.ScoreDate.Equal(sharedtypes.Day(day)) {
			out := s
			return &out, nil
		}
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepository) GetScoresInRange(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, start, end time.Time) ([]scoredb.DailyScore, error) {
	f.record("GetScoresInRange")
	if f.GetScoresInRangeFunc != nil {
		return f.GetScoresInRangeFunc(ctx, db, participantID, start, end)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []scoredb.DailyScore
	for _, s := range f.scores[participantID] {
		if !s.ScoreDate.Before(sharedtypes.Day(start)) && !s.ScoreDate.After(sharedtypes.Day(end)) {
			out = append(out, s)
		}
	}
	return out, nil
}

// FakeNames labels participants with a fixed map.
type FakeNames map[sharedtypes.ParticipantID]string

func (f FakeNames) Resolve(_ context.Context, _ sharedtypes.GroupID, id sharedtypes.ParticipantID) string {
	if name, ok := f[id]; ok {
		return name
	}
	return id.String()
}
