package scoreservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// RecordScore stores today's result for the participant. The raw score is stored even when
// it is above the attempt limit; only the confirmation renders it as "X".
func (s *ScoreService) RecordScore(ctx context.Context, participantID sharedtypes.ParticipantID, result GameResult) (ScoreOperationResult, error) {
	return withTelemetry(s, ctx, "RecordScore", participantID.String(), func(ctx context.Context) (ScoreOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (ScoreOperationResult, error) {
			return s.recordScoreLogic(ctx, db, participantID, result)
		})
	})
}

func (s *ScoreService) recordScoreLogic(ctx context.Context, db bun.IDB, participantID sharedtypes.ParticipantID, result GameResult) (ScoreOperationResult, error) {
	if participantID == "" {
		return results.FailureResult[*Confirmation, error](fmt.Errorf("%w: missing participant", ErrMalformedResult)), nil
	}
	if err := result.Validate(); err != nil {
		return results.FailureResult[*Confirmation, error](err), nil
	}

	today := s.calendar.Today()

	replaced := true
	if _, err := s.repo.GetScore(ctx, db, participantID, today); err != nil {
		if !errors.Is(err, scoredb.ErrNotFound) {
			return ScoreOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		replaced = false
	}

	record := &scoredb.DailyScore{
		ParticipantID: participantID,
		ScoreDate:     today,
		Score:         result.Score,
		Attempts:      result.Attempts,
	}
	if err := s.repo.UpsertScore(ctx, db, record); err != nil {
		return ScoreOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return results.SuccessResult[*Confirmation, error](&Confirmation{
		ParticipantID: participantID,
		Date:          today,
		Score:         result.Score,
		Attempts:      result.Attempts,
		SecretWord:    result.SecretWord,
		Replaced:      replaced,
	}), nil
}
