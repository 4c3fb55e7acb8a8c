package tournamenthandlers

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
)

// HandleCreateTournament opens the creation dialog.
func (h *TournamentHandlers) HandleCreateTournament(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleCreateTournament")
	defer span.End()

	out := h.dialog.Begin(ctx, tournamentservice.DialogEntry{
		GroupID:       payload.GroupID,
		ChatID:        payload.ChatID,
		ParticipantID: payload.ParticipantID,
		InGroup:       payload.IsGroup(),
	})
	return reply(destination(out, payload), out.Text), nil
}

// HandleDialogText routes free text to the sender's creation dialog. Text from participants
// without a dialog is ignored.
func (h *TournamentHandlers) HandleDialogText(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleDialogText")
	defer span.End()

	out, ok, err := h.dialog.Answer(ctx, payload.ParticipantID, payload.Text)
	if err != nil {
		h.logger.ErrorContext(ctx, "Creation dialog step failed",
			observability.CorrelationAttr(ctx),
			attr.String("participant_id", payload.ParticipantID.String()),
			attr.Error(err),
		)
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return reply(destination(out, payload), out.Text), nil
}

// HandleDialogCancel answers /cancel.
func (h *TournamentHandlers) HandleDialogCancel(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	out, _ := h.dialog.Cancel(ctx, payload.ParticipantID)
	return reply(destination(out, payload), out.Text), nil
}

func destination(out tournamentservice.DialogReply, payload *chatevents.ChatEventV1) string {
	if out.ChatID != "" {
		return out.ChatID
	}
	if payload.ChatID != "" {
		return payload.ChatID
	}
	return payload.ParticipantID.String()
}
