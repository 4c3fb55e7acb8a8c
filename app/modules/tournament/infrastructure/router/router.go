package tournamentrouter

import (
	"context"
	"log/slog"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	tournamenthandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/handlers"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// TournamentRouter registers the tournament lifecycle and creation dialog handlers.
type TournamentRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
}

// NewTournamentRouter creates a new TournamentRouter.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
) *TournamentRouter {
	return &TournamentRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *TournamentRouter) Configure(_ context.Context, handlers tournamenthandlers.Handlers) error {
	registrations := []struct {
		topic   string
		handler func(context.Context, *chatevents.ChatEventV1) ([]handlerwrapper.Result, error)
	}{
		{chatevents.TournamentCreateRequestedV1, handlers.HandleCreateTournament},
		{chatevents.DialogTextReceivedV1, handlers.HandleDialogText},
		{chatevents.DialogCancelRequestedV1, handlers.HandleDialogCancel},
		{chatevents.TournamentJoinRequestedV1, handlers.HandleJoinTournament},
		{chatevents.TournamentLeaveRequestedV1, handlers.HandleLeaveTournament},
	}

	for _, reg := range registrations {
		registerHandler(r, reg.topic, reg.handler)
	}

	r.logger.Info("Tournament module handlers registered successfully",
		slog.Int("handler_count", len(registrations)),
	)
	return nil
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	r *TournamentRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "tournament." + topic

	r.router.AddHandler(
		handlerName,
		topic,
		r.subscriber,
		"",
		r.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			r.logger,
			r.tracer,
			r.publisher,
			handler,
		),
	)
}
