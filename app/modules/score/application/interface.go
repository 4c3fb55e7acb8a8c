package scoreservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// ScoreOperationResult is the outcome of recording a score.
type ScoreOperationResult = results.OperationResult[*Confirmation, error]

// Service records daily game results.
type Service interface {
	// RecordScore stores today's result for the participant, replacing an earlier one.
	RecordScore(ctx context.Context, participantID sharedtypes.ParticipantID, result GameResult) (ScoreOperationResult, error)
}
