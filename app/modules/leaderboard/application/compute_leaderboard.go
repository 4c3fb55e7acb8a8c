package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"golang.org/x/sync/errgroup"
)

// ComputeLeaderboard ranks the roster of the group's active tournament by average score.
func (s *LeaderboardService) ComputeLeaderboard(ctx context.Context, groupID sharedtypes.GroupID) (LeaderboardOperationResult, error) {
	return withTelemetry(s, ctx, "ComputeLeaderboard", groupID.String(), func(ctx context.Context) (LeaderboardOperationResult, error) {
		res, err := s.tournaments.GetActiveTournament(ctx, groupID)
		if err != nil {
			return LeaderboardOperationResult{}, err
		}
		if res.IsFailure() {
			return results.FailureResult[*Leaderboard, error](mapTournamentFailure(*res.Failure)), nil
		}

		board, err := s.compute(ctx, *res.Success, s.calendar.Today())
		if err != nil {
			return LeaderboardOperationResult{}, err
		}
		return results.SuccessResult[*Leaderboard, error](board), nil
	})
}

func mapTournamentFailure(failure error) error {
	if errors.Is(failure, tournamentservice.ErrNoActiveTournament) {
		return ErrNoActiveTournament
	}
	return failure
}

// DaysElapsed counts the tournament days up to and including today, capped at the duration.
// It is zero before the tournament starts.
func DaysElapsed(t *tournamentdb.Tournament, today time.Time) int {
	elapsed := sharedtypes.DaysBetween(t.StartDate, today) + 1
	if elapsed < 0 {
		return 0
	}
	return min(elapsed, t.DurationDays())
}

type participantScores struct {
	today  *sharedtypes.Score
	scores []scoredb.DailyScore
	name   string
}

func (s *LeaderboardService) compute(ctx context.Context, t *tournamentdb.Tournament, today time.Time) (*Leaderboard, error) {
	today = sharedtypes.Day(today)
	board := &Leaderboard{
		Tournament: t,
		Today:      today,
		Daily:      make(map[sharedtypes.ParticipantID]map[string]sharedtypes.Score, len(t.Participants)),
	}

	if today.Before(sharedtypes.Day(t.StartDate)) {
		board.NotStarted = true
		return board, nil
	}
	board.DaysElapsed = DaysElapsed(t, today)

	windowEnd := sharedtypes.Day(t.EndDate)
	if today.Before(windowEnd) {
		windowEnd = today
	}
	todayInWindow := t.Contains(today)

	collected := make([]participantScores, len(t.Participants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, participantID := range t.Participants {
		g.Go(func() error {
			scores, err := s.scores.GetScoresInRange(gctx, nil, participantID, t.StartDate, windowEnd)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
			}
			ps := participantScores{scores: scores}

			if todayInWindow {
				for _, sc := range scores {
					if sharedtypes.Day(sc.ScoreDate).Equal(today) {
						score := sc.Score
						ps.today = &score
					}
				}
			} else {
				record, err := s.scores.GetScore(gctx, nil, participantID, today)
				switch {
				case err == nil:
					score := record.Score
					ps.today = &score
				case !errors.Is(err, scoredb.ErrNotFound):
					return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
				}
			}

			ps.name = s.displayName(gctx, t.GroupID, participantID)
			collected[i] = ps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(t.Participants))
	for i, participantID := range t.Participants {
		ps := collected[i]
		daily := make(map[string]sharedtypes.Score, len(ps.scores))
		sum := 0
		for _, sc := range ps.scores {
			daily[sharedtypes.FormatDay(sc.ScoreDate)] = sc.Score
		}
		for _, score := range daily {
			sum += int(score)
		}
		played := min(len(daily), board.DaysElapsed)
		total := sum + sharedtypes.PenaltyScore*(board.DaysElapsed-played)

		board.Daily[participantID] = daily
		entries = append(entries, Entry{
			ParticipantID: participantID,
			DisplayName:   ps.name,
			TodayScore:    ps.today,
			DaysPlayed:    played,
			Total:         total,
			Average:       float64(total) / float64(board.DaysElapsed),
		})
	}

	// Roster order is join order, so a stable sort breaks ties by who joined first.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Average < entries[j].Average
	})
	for i := range entries {
		if i > 0 && entries[i].Average == entries[i-1].Average {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	board.Entries = entries

	s.logger.InfoContext(ctx, "Leaderboard computed",
		observability.CorrelationAttr(ctx),
		attr.String("group_id", t.GroupID.String()),
		attr.String("tournament_key", t.TournamentKey),
		attr.Int("participants", len(entries)),
		attr.Int("days_elapsed", board.DaysElapsed),
	)
	return board, nil
}

func (s *LeaderboardService) displayName(ctx context.Context, groupID sharedtypes.GroupID, id sharedtypes.ParticipantID) string {
	if s.names == nil {
		return id.String()
	}
	return s.names.Resolve(ctx, groupID, id)
}
