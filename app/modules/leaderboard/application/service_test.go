package leaderboardservice

import (
	"io"
	"log/slog"
	"time"

	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"go.opentelemetry.io/otel/trace/noop"
)

const testGroup = sharedtypes.GroupID("-100200300")

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTournament(start time.Time, days int, roster ...sharedtypes.ParticipantID) *tournamentdb.Tournament {
	key := tournamentdb.TournamentKey(testGroup, start)
	return &tournamentdb.Tournament{
		ID:            tournamentdb.TournamentID(key),
		TournamentKey: key,
		GroupID:       testGroup,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, days-1),
		Participants:  roster,
		CreatedBy:     "creator",
		Status:        tournamentdb.StatusActive,
	}
}

func newTestService(reader TournamentReader, scores *FakeScoreRepository, names NameResolver, now time.Time) *LeaderboardService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLeaderboardService(
		reader,
		scores,
		names,
		logger,
		observability.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		clock.NewGameCalendar(clock.FixedClock(now), time.UTC),
		2,
	)
}
