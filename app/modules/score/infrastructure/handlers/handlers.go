package scorehandlers

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	scoreservice "github.com/Black-And-White-Club/wordle-bot/app/modules/score/application"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"go.opentelemetry.io/otel/trace"
)

const (
	startReply        = "Bot is running after reboot!"
	playReply         = "Play today's Wordle here!"
	failedResultReply = "⚠️ Failed to process game data."
)

// NameRecorder remembers the display hints that arrive with chat events.
type NameRecorder interface {
	Remember(ctx context.Context, id sharedtypes.ParticipantID, hint string)
}

// ScoreHandlers implements the Handlers interface.
type ScoreHandlers struct {
	service   scoreservice.Service
	names     NameRecorder
	logger    *slog.Logger
	tracer    trace.Tracer
	webAppURL string
}

// NewScoreHandlers creates a new ScoreHandlers instance.
func NewScoreHandlers(
	service scoreservice.Service,
	names NameRecorder,
	logger *slog.Logger,
	tracer trace.Tracer,
	webAppURL string,
) Handlers {
	return &ScoreHandlers{
		service:   service,
		names:     names,
		logger:    logger,
		tracer:    tracer,
		webAppURL: webAppURL,
	}
}

// HandleGameResult records a finished game and confirms it to the player privately.
func (h *ScoreHandlers) HandleGameResult(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ScoreHandlers.HandleGameResult")
	defer span.End()

	if h.names != nil {
		h.names.Remember(ctx, payload.ParticipantID, payload.DisplayHint)
	}

	result, err := scoreservice.ParseGameResult(payload.Payload)
	if err != nil {
		h.logger.WarnContext(ctx, "Rejected malformed game result",
			observability.CorrelationAttr(ctx),
			attr.String("participant_id", payload.ParticipantID.String()),
			attr.Error(err),
		)
		return reply(playerDestination(payload), failedResultReply), nil
	}

	res, err := h.service.RecordScore(ctx, payload.ParticipantID, result)
	if err != nil {
		return nil, err
	}
	if res.IsFailure() {
		h.logger.WarnContext(ctx, "Game result not recorded",
			observability.CorrelationAttr(ctx),
			attr.String("participant_id", payload.ParticipantID.String()),
			attr.Error(*res.Failure),
		)
		return reply(playerDestination(payload), failedResultReply), nil
	}

	confirmation := *res.Success
	h.logger.InfoContext(ctx, "Game result recorded",
		observability.CorrelationAttr(ctx),
		attr.String("participant_id", payload.ParticipantID.String()),
		attr.Int("score", int(confirmation.Score)),
		attr.Bool("replaced", confirmation.Replaced),
	)
	return reply(playerDestination(payload), confirmation.Message()), nil
}

// HandleStartCommand answers /start.
func (h *ScoreHandlers) HandleStartCommand(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Received /start", attr.String("participant_id", payload.ParticipantID.String()))
	return reply(payload.ChatID, startReply), nil
}

// HandlePlayCommand answers /play with a button that opens the game.
func (h *ScoreHandlers) HandlePlayCommand(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Received /play", attr.String("participant_id", payload.ParticipantID.String()))
	if h.names != nil {
		h.names.Remember(ctx, payload.ParticipantID, payload.DisplayHint)
	}
	return []handlerwrapper.Result{{
		Topic: chatevents.SendTextV1,
		Payload: &chatevents.SendTextPayloadV1{
			Destination: payload.ChatID,
			Text:        playReply,
			WebAppURL:   h.webAppURL,
		},
	}}, nil
}

// playerDestination is the player's private chat. Game results arrive from the web app in
// the private chat, but the participant id is the fallback when the transport omits it.
func playerDestination(payload *chatevents.ChatEventV1) string {
	if payload.ChatID != "" {
		return payload.ChatID
	}
	return payload.ParticipantID.String()
}

func reply(destination, text string) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic:   chatevents.SendTextV1,
		Payload: &chatevents.SendTextPayloadV1{Destination: destination, Text: text},
	}}
}
