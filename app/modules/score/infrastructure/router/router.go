package scorerouter

import (
	"context"
	"log/slog"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	scorehandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/handlers"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ScoreRouter handles Watermill handler registration for score events.
type ScoreRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
}

// NewScoreRouter creates a new ScoreRouter.
func NewScoreRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
) *ScoreRouter {
	return &ScoreRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *ScoreRouter) Configure(_ context.Context, handlers scorehandlers.Handlers) error {
	r.logger.Info("Registering score module handlers",
		slog.String("game_result_subject", chatevents.GameResultSubmittedV1),
		slog.String("play_subject", chatevents.PlayCommandV1),
	)

	registerHandler(r, chatevents.GameResultSubmittedV1, handlers.HandleGameResult)
	registerHandler(r, chatevents.StartCommandV1, handlers.HandleStartCommand)
	registerHandler(r, chatevents.PlayCommandV1, handlers.HandlePlayCommand)

	r.logger.Info("Score module handlers registered successfully")
	return nil
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	r *ScoreRouter,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "score." + topic

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
