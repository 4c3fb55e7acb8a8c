package leaderboardrouter

import (
	"context"
	"log/slog"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	leaderboardhandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardRouter registers the leaderboard, chart and export handlers.
type LeaderboardRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
}

// NewLeaderboardRouter creates a new LeaderboardRouter.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
) *LeaderboardRouter {
	return &LeaderboardRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *LeaderboardRouter) Configure(_ context.Context, handlers leaderboardhandlers.Handlers) error {
	registrations := map[string]func(context.Context, *chatevents.ChatEventV1) ([]handlerwrapper.Result, error){
		chatevents.LeaderboardRequestedV1:      handlers.HandleLeaderboardRequested,
		chatevents.LeaderboardChartRequestedV1: handlers.HandleLeaderboardChartRequested,
		chatevents.TournamentExportRequestedV1: handlers.HandleTournamentExportRequested,
	}

	for topic, handler := range registrations {
		registerHandler(r, topic, handler)
	}

	r.logger.Info("Leaderboard module handlers registered successfully",
		slog.Int("handler_count", len(registrations)),
	)
	return nil
}

func registerHandler[T any](
	r *LeaderboardRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "leaderboard." + topic

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
