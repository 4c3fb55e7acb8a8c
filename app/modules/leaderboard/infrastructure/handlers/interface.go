package leaderboardhandlers

import (
	"context"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
)

// Handlers defines the interface for leaderboard event handlers.
type Handlers interface {
	HandleLeaderboardRequested(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
	HandleLeaderboardChartRequested(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
	HandleTournamentExportRequested(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
}
