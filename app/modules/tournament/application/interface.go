package tournamentservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

type (
	TournamentOperationResult = results.OperationResult[*tournamentdb.Tournament, error]
	CreateOperationResult     = results.OperationResult[*CreatedTournament, error]
	RosterOperationResult     = results.OperationResult[*RosterChange, error]
)

// Service manages tournaments and their rosters.
type Service interface {
	CreateTournament(ctx context.Context, req CreateTournamentRequest) (CreateOperationResult, error)
	GetActiveTournament(ctx context.Context, groupID sharedtypes.GroupID) (TournamentOperationResult, error)
	JoinTournament(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (RosterOperationResult, error)
	LeaveTournament(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (RosterOperationResult, error)
}
