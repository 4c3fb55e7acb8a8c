package tournamenthandlers

import (
	"context"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
)

// Handlers defines the interface for tournament event handlers.
type Handlers interface {
	HandleCreateTournament(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
	HandleDialogText(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
	HandleDialogCancel(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
	HandleJoinTournament(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
	HandleLeaveTournament(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
}
