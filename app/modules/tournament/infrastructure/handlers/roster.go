package tournamenthandlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
)

// HandleJoinTournament adds the sender to the group's tournament.
func (h *TournamentHandlers) HandleJoinTournament(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleJoinTournament")
	defer span.End()

	if !payload.IsGroup() {
		return reply(payload.ChatID, groupCommandReply), nil
	}

	res, err := h.service.JoinTournament(ctx, payload.GroupID, payload.ParticipantID)
	if err != nil {
		return nil, err
	}

	name := h.displayName(ctx, payload)
	if res.IsFailure() {
		return reply(payload.ChatID, h.rosterFailureText(ctx, payload, *res.Failure, name)), nil
	}

	change := *res.Success
	h.logger.InfoContext(ctx, "Participant joined tournament",
		observability.CorrelationAttr(ctx),
		attr.String("group_id", payload.GroupID.String()),
		attr.String("participant_id", payload.ParticipantID.String()),
		attr.Int("roster_size", len(change.Tournament.Participants)),
	)
	return reply(payload.ChatID, fmt.Sprintf(joinedReply, name, len(change.Tournament.Participants))), nil
}

// HandleLeaveTournament removes the sender from the group's tournament.
func (h *TournamentHandlers) HandleLeaveTournament(ctx context.Context, payload *chatevents.ChatEventV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleLeaveTournament")
	defer span.End()

	if !payload.IsGroup() {
		return reply(payload.ChatID, groupCommandReply), nil
	}

	res, err := h.service.LeaveTournament(ctx, payload.GroupID, payload.ParticipantID)
	if err != nil {
		return nil, err
	}

	name := h.displayName(ctx, payload)
	if res.IsFailure() {
		return reply(payload.ChatID, h.rosterFailureText(ctx, payload, *res.Failure, name)), nil
	}

	h.logger.InfoContext(ctx, "Participant left tournament",
		observability.CorrelationAttr(ctx),
		attr.String("group_id", payload.GroupID.String()),
		attr.String("participant_id", payload.ParticipantID.String()),
	)
	return reply(payload.ChatID, fmt.Sprintf(leftReply, name)), nil
}

func (h *TournamentHandlers) rosterFailureText(ctx context.Context, payload *chatevents.ChatEventV1, failure error, name string) string {
	switch {
	case errors.Is(failure, tournamentservice.ErrNoActiveTournament):
		return noActiveTournamentReply
	case errors.Is(failure, tournamentservice.ErrAlreadyJoined):
		return fmt.Sprintf(alreadyJoinedReply, name)
	case errors.Is(failure, tournamentservice.ErrNotInTournament):
		return fmt.Sprintf(notInTournamentReply, name)
	default:
		h.logger.WarnContext(ctx, "Roster change failed",
			observability.CorrelationAttr(ctx),
			attr.String("group_id", payload.GroupID.String()),
			attr.Error(failure),
		)
		return rosterBusyReply
	}
}
