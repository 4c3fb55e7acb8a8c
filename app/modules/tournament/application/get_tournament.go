package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// GetActiveTournament resolves the group's tournament.
func (s *TournamentService) GetActiveTournament(ctx context.Context, groupID sharedtypes.GroupID) (TournamentOperationResult, error) {
	return withTelemetry(s, ctx, "GetActiveTournament", groupID.String(), func(ctx context.Context) (TournamentOperationResult, error) {
		tournament, err := s.repo.GetActiveTournament(ctx, nil, groupID)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return results.FailureResult[*tournamentdb.Tournament, error](ErrNoActiveTournament), nil
			}
			return TournamentOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return results.SuccessResult[*tournamentdb.Tournament, error](tournament), nil
	})
}
