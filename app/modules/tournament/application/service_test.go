package tournamentservice

import (
	"io"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"go.opentelemetry.io/otel/trace/noop"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(repo *FakeTournamentRepository, now time.Time) *TournamentService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTournamentService(
		repo,
		logger,
		observability.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
		clock.NewGameCalendar(clock.FixedClock(now), time.UTC),
	)
}
