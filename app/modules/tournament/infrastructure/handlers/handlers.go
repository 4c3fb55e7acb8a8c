package tournamenthandlers

import (
	"context"
	"log/slog"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"go.opentelemetry.io/otel/trace"
)

const (
	noActiveTournamentReply = "There is no active tournament in this chat. Use /create_tournament to start one."
	groupCommandReply       = "Use this command in the group chat that runs the tournament."
	joinedReply             = "✅ %s joined the tournament! Players: %d"
	alreadyJoinedReply      = "ℹ️ %s is already in the tournament."
	leftReply               = "👋 %s left the tournament."
	notInTournamentReply    = "ℹ️ %s is not in the tournament."
	rosterBusyReply         = "⚠️ The roster changed while updating it. Please try again."
)

// Dialog is the tournament creation conversation.
type Dialog interface {
	Begin(ctx context.Context, entry tournamentservice.DialogEntry) tournamentservice.DialogReply
	Answer(ctx context.Context, participantID sharedtypes.ParticipantID, text string) (tournamentservice.DialogReply, bool, error)
	Cancel(ctx context.Context, participantID sharedtypes.ParticipantID) (tournamentservice.DialogReply, bool)
}

// Names remembers and resolves participant display names.
type Names interface {
	Remember(ctx context.Context, id sharedtypes.ParticipantID, hint string)
	Resolve(ctx context.Context, groupID sharedtypes.GroupID, id sharedtypes.ParticipantID) string
}

// TournamentHandlers implements the Handlers interface.
type TournamentHandlers struct {
	service tournamentservice.Service
	dialog  Dialog
	names   Names
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(
	service tournamentservice.Service,
	dialog Dialog,
	names Names,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &TournamentHandlers{
		service: service,
		dialog:  dialog,
		names:   names,
		logger:  logger,
		tracer:  tracer,
	}
}

// displayName prefers the hint the transport attached to the event.
func (h *TournamentHandlers) displayName(ctx context.Context, payload *chatevents.ChatEventV1) string {
	if h.names == nil {
		if payload.DisplayHint != "" {
			return payload.DisplayHint
		}
		return payload.ParticipantID.String()
	}
	if payload.DisplayHint != "" {
		h.names.Remember(ctx, payload.ParticipantID, payload.DisplayHint)
		return payload.DisplayHint
	}
	return h.names.Resolve(ctx, payload.GroupID, payload.ParticipantID)
}

func reply(destination, text string) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic:   chatevents.SendTextV1,
		Payload: &chatevents.SendTextPayloadV1{Destination: destination, Text: text},
	}}
}
