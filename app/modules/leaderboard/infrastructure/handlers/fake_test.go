package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// FakeLeaderboardService is a programmable fake for leaderboardservice.Service.
type FakeLeaderboardService struct {
	trace []string

	ComputeLeaderboardFunc func(ctx context.Context, groupID sharedtypes.GroupID) (leaderboardservice.LeaderboardOperationResult, error)
	ExportTournamentFunc   func(ctx context.Context, groupID sharedtypes.GroupID) (leaderboardservice.ExportOperationResult, error)
}

func (f *FakeLeaderboardService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeLeaderboardService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeaderboardService) ComputeLeaderboard(ctx context.Context, groupID sharedtypes.GroupID) (leaderboardservice.LeaderboardOperationResult, error) {
	f.record("ComputeLeaderboard")
	if f.ComputeLeaderboardFunc != nil {
		return f.ComputeLeaderboardFunc(ctx, groupID)
	}
	return leaderboardservice.LeaderboardOperationResult{}, nil
}

func (f *FakeLeaderboardService) ExportTournament(ctx context.Context, groupID sharedtypes.GroupID) (leaderboardservice.ExportOperationResult, error) {
	f.record("ExportTournament")
	if f.ExportTournamentFunc != nil {
		return f.ExportTournamentFunc(ctx, groupID)
	}
	return leaderboardservice.ExportOperationResult{}, nil
}

var _ leaderboardservice.Service = (*FakeLeaderboardService)(nil)
