package scoreintegrationtests

import (
	"testing"
	"time"

	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/Black-And-White-Club/wordle-bot/integration_tests/testutils"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := sharedtypes.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUpsertScore(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	repo := scoredb.NewRepository(env.DB)
	generator := testutils.NewTestDataGenerator(42)

	tests := []struct {
		name   string
		setup  func(t *testing.T, pid sharedtypes.ParticipantID)
		score  sharedtypes.Score
		verify func(t *testing.T, got *scoredb.DailyScore)
	}{
		{
			name:  "first submission is stored",
			score: 3,
			verify: func(t *testing.T, got *scoredb.DailyScore) {
				require.Equal(t, sharedtypes.Score(3), got.Score)
				require.Equal(t, 3, got.Attempts)
			},
		},
		{
			name: "resubmission replaces the earlier score",
			setup: func(t *testing.T, pid sharedtypes.ParticipantID) {
				require.NoError(t, repo.UpsertScore(env.Ctx, nil, &scoredb.DailyScore{
					ParticipantID: pid,
					ScoreDate:     day("2026-10-19"),
					Score:         5,
					Attempts:      5,
				}))
			},
			score: 2,
			verify: func(t *testing.T, got *scoredb.DailyScore) {
				require.Equal(t, sharedtypes.Score(2), got.Score)
				require.True(t, !got.UpdatedAt.Before(got.CreatedAt))
			},
		},
		{
			name:  "failed game is kept as X",
			score: sharedtypes.PenaltyScore,
			verify: func(t *testing.T, got *scoredb.DailyScore) {
				require.Equal(t, "X", got.Score.Display())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.ResetDatabase(t)
			pid := generator.GenerateParticipants(1)[0].ID
			if tt.setup != nil {
				tt.setup(t, pid)
			}

			err := repo.UpsertScore(env.Ctx, nil, &scoredb.DailyScore{
				ParticipantID: pid,
				ScoreDate:     day("2026-10-19"),
				Score:         tt.score,
				Attempts:      int(tt.score),
			})
			require.NoError(t, err)

			got, err := repo.GetScore(env.Ctx, nil, pid, day("2026-10-19"))
			require.NoError(t, err)
			tt.verify(t, got)

			var count int
			count, err = env.DB.NewSelect().Model((*scoredb.DailyScore)(nil)).Where("participant_id = ?", pid).Count(env.Ctx)
			require.NoError(t, err)
			require.Equal(t, 1, count)
		})
	}
}

func TestGetScore_NotFound(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	env.ResetDatabase(t)
	repo := scoredb.NewRepository(env.DB)

	_, err := repo.GetScore(env.Ctx, nil, "nobody", day("2026-10-19"))
	require.ErrorIs(t, err, scoredb.ErrNotFound)
}

func TestGetScoresInRange(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	env.ResetDatabase(t)
	repo := scoredb.NewRepository(env.DB)
	generator := testutils.NewTestDataGenerator(7)
	participants := generator.GenerateParticipants(2)
	a, b := participants[0].ID, participants[1].ID

	seed := map[sharedtypes.ParticipantID]map[string]sharedtypes.Score{
		a: {"2026-10-16": 4, "2026-10-17": 2, "2026-10-18": 7, "2026-10-20": 1},
		b: {"2026-10-17": 3},
	}
	for pid, days := range seed {
		for d, s := range days {
			require.NoError(t, repo.UpsertScore(env.Ctx, nil, &scoredb.DailyScore{
				ParticipantID: pid,
				ScoreDate:     day(d),
				Score:         s,
				Attempts:      int(s),
			}))
		}
	}

	scores, err := repo.GetScoresInRange(env.Ctx, nil, a, day("2026-10-17"), day("2026-10-19"))
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.Equal(t, "2026-10-17", sharedtypes.FormatDay(scores[0].ScoreDate))
	require.Equal(t, sharedtypes.Score(2), scores[0].Score)
	require.Equal(t, "2026-10-18", sharedtypes.FormatDay(scores[1].ScoreDate))
	require.Equal(t, sharedtypes.Score(7), scores[1].Score)

	scores, err = repo.GetScoresInRange(env.Ctx, nil, b, day("2026-10-18"), day("2026-10-19"))
	require.NoError(t, err)
	require.Empty(t, scores)
}

func TestUpsertScore_InTransaction(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	env.ResetDatabase(t)
	repo := scoredb.NewRepository(env.DB)
	pid := testutils.NewTestDataGenerator(3).GenerateParticipants(1)[0].ID

	tx, err := env.DB.BeginTx(env.Ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertScore(env.Ctx, tx, &scoredb.DailyScore{
		ParticipantID: pid,
		ScoreDate:     day("2026-10-19"),
		Score:         4,
		Attempts:      4,
	}))
	require.NoError(t, tx.Rollback())

	_, err = repo.GetScore(env.Ctx, nil, pid, day("2026-10-19"))
	require.ErrorIs(t, err, scoredb.ErrNotFound)
}
