package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

const maxRosterAttempts = 3

type rosterMutation func(roster []sharedtypes.ParticipantID, id sharedtypes.ParticipantID) ([]sharedtypes.ParticipantID, error)

// JoinTournament adds the participant to the group's active tournament.
func (s *TournamentService) JoinTournament(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (RosterOperationResult, error) {
	return withTelemetry(s, ctx, "JoinTournament", groupID.String(), func(ctx context.Context) (RosterOperationResult, error) {
		return s.changeRoster(ctx, groupID, participantID, true, addParticipant)
	})
}

// LeaveTournament removes the participant from the group's active tournament.
func (s *TournamentService) LeaveTournament(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (RosterOperationResult, error) {
	return withTelemetry(s, ctx, "LeaveTournament", groupID.String(), func(ctx context.Context) (RosterOperationResult, error) {
		return s.changeRoster(ctx, groupID, participantID, false, removeParticipant)
	})
}

// changeRoster re-reads the roster and retries when a concurrent writer bumped its version.
func (s *TournamentService) changeRoster(
	ctx context.Context,
	groupID sharedtypes.GroupID,
	participantID sharedtypes.ParticipantID,
	joined bool,
	mutate rosterMutation,
) (RosterOperationResult, error) {
	for attempt := 1; attempt <= maxRosterAttempts; attempt++ {
		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RosterOperationResult, error) {
			return s.changeRosterOnce(ctx, db, groupID, participantID, joined, mutate)
		})
		if errors.Is(err, tournamentdb.ErrRosterConflict) {
			s.logger.WarnContext(ctx, "Roster update conflicted, retrying",
				observability.CorrelationAttr(ctx),
				attr.String("group_id", groupID.String()),
				attr.Int("attempt", attempt),
			)
			continue
		}
		return result, err
	}
	return results.FailureResult[*RosterChange, error](ErrRosterConflict), nil
}

func (s *TournamentService) changeRosterOnce(
	ctx context.Context,
	db bun.IDB,
	groupID sharedtypes.GroupID,
	participantID sharedtypes.ParticipantID,
	joined bool,
	mutate rosterMutation,
) (RosterOperationResult, error) {
	tournament, err := s.repo.GetActiveTournament(ctx, db, groupID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[*RosterChange, error](ErrNoActiveTournament), nil
		}
		return RosterOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	roster, err := mutate(tournament.Participants, participantID)
	if err != nil {
		return results.FailureResult[*RosterChange, error](err), nil
	}

	version, err := s.repo.UpdateRoster(ctx, db, tournament.ID, roster, tournament.RosterVersion)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrRosterConflict) {
			return RosterOperationResult{}, err
		}
		return RosterOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	tournament.Participants = roster
	tournament.RosterVersion = version
	return results.SuccessResult[*RosterChange, error](&RosterChange{
		Tournament:    tournament,
		ParticipantID: participantID,
		Joined:        joined,
	}), nil
}

func addParticipant(roster []sharedtypes.ParticipantID, id sharedtypes.ParticipantID) ([]sharedtypes.ParticipantID, error) {
	if slices.Contains(roster, id) {
		return nil, ErrAlreadyJoined
	}
	return append(slices.Clone(roster), id), nil
}

func removeParticipant(roster []sharedtypes.ParticipantID, id sharedtypes.ParticipantID) ([]sharedtypes.ParticipantID, error) {
	idx := slices.Index(roster, id)
	if idx < 0 {
		return nil, ErrNotInTournament
	}
	return slices.Delete(slices.Clone(roster), idx, idx+1), nil
}
