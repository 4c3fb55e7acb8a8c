package scorehandlers

import (
	"context"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
)

// Handlers defines the interface for score event handlers.
type Handlers interface {
	// HandleGameResult records a finished game sent by the web app.
	HandleGameResult(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)

	// HandleStartCommand answers /start.
	HandleStartCommand(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)

	// HandlePlayCommand answers /play with the game link.
	HandlePlayCommand(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
}
