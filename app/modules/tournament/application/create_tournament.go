package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// CreateTournament starts a tournament for the group. Repeating a request with the same group
// and start date returns the tournament created the first time.
func (s *TournamentService) CreateTournament(ctx context.Context, req CreateTournamentRequest) (CreateOperationResult, error) {
	return withTelemetry(s, ctx, "CreateTournament", req.GroupID.String(), func(ctx context.Context) (CreateOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (CreateOperationResult, error) {
			return s.createTournamentLogic(ctx, db, req)
		})
	})
}

func (s *TournamentService) createTournamentLogic(ctx context.Context, db bun.IDB, req CreateTournamentRequest) (CreateOperationResult, error) {
	if err := ValidateDuration(req.DurationDays); err != nil {
		return results.FailureResult[*CreatedTournament, error](err), nil
	}

	start := sharedtypes.Day(req.StartDate)
	key := tournamentdb.TournamentKey(req.GroupID, start)

	// A replayed request finds its tournament even if the start date has since passed.
	existing, err := s.repo.GetTournamentByKey(ctx, db, key)
	switch {
	case err == nil:
		return results.SuccessResult[*CreatedTournament, error](&CreatedTournament{Tournament: existing}), nil
	case !errors.Is(err, tournamentdb.ErrNotFound):
		return CreateOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	today := s.calendar.Today()
	if err := ValidateWindow(start, req.DurationDays, today); err != nil {
		return results.FailureResult[*CreatedTournament, error](err), nil
	}

	var superseded *tournamentdb.Tournament
	active, err := s.repo.GetActiveTournament(ctx, db, req.GroupID)
	switch {
	case err == nil:
		if !active.EndDate.Before(today) {
			return results.FailureResult[*CreatedTournament, error](fmt.Errorf("%w: %s runs until %s",
				ErrTournamentAlreadyActive, active.TournamentKey, sharedtypes.FormatDay(active.EndDate))), nil
		}
		if err := s.repo.UpdateStatus(ctx, db, active.ID, tournamentdb.StatusEnded); err != nil {
			return CreateOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		active.Status = tournamentdb.StatusEnded
		superseded = active
		s.logger.InfoContext(ctx, "Archived finished tournament",
			observability.CorrelationAttr(ctx),
			attr.String("tournament_key", active.TournamentKey),
		)
	case !errors.Is(err, tournamentdb.ErrNotFound):
		return CreateOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	tournament := &tournamentdb.Tournament{
		ID:            tournamentdb.TournamentID(key),
		TournamentKey: key,
		GroupID:       req.GroupID,
		StartDate:     start,
		EndDate:       EndDate(start, req.DurationDays),
		Participants:  []sharedtypes.ParticipantID{req.CreatorID},
		CreatedBy:     req.CreatorID,
		Status:        tournamentdb.StatusActive,
	}

	created, err := s.repo.CreateTournament(ctx, db, tournament)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrActiveTournamentExists) {
			return results.FailureResult[*CreatedTournament, error](fmt.Errorf("%w: %w", ErrTournamentAlreadyActive, err)), nil
		}
		return CreateOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if !created {
		// A concurrent identical request won the insert.
		existing, err := s.repo.GetTournamentByKey(ctx, db, key)
		if err != nil {
			return CreateOperationResult{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return results.SuccessResult[*CreatedTournament, error](&CreatedTournament{Tournament: existing}), nil
	}

	s.logger.InfoContext(ctx, "Tournament created",
		observability.CorrelationAttr(ctx),
		attr.String("tournament_key", key),
		attr.String("created_by", req.CreatorID.String()),
		attr.Int("duration_days", req.DurationDays),
	)

	return results.SuccessResult[*CreatedTournament, error](&CreatedTournament{
		Tournament: tournament,
		Created:    true,
		Superseded: superseded,
	}), nil
}
