package leaderboardservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

type (
	LeaderboardOperationResult = results.OperationResult[*Leaderboard, error]
	ExportOperationResult      = results.OperationResult[*ExportFile, error]
)

// Service computes tournament standings.
type Service interface {
	ComputeLeaderboard(ctx context.Context, groupID sharedtypes.GroupID) (LeaderboardOperationResult, error)
	ExportTournament(ctx context.Context, groupID sharedtypes.GroupID) (ExportOperationResult, error)
}

// TournamentReader resolves a group's active tournament.
type TournamentReader interface {
	GetActiveTournament(ctx context.Context, groupID sharedtypes.GroupID) (tournamentservice.TournamentOperationResult, error)
}

// NameResolver turns participant ids into display names. It never fails.
type NameResolver interface {
	Resolve(ctx context.Context, groupID sharedtypes.GroupID, id sharedtypes.ParticipantID) string
}
