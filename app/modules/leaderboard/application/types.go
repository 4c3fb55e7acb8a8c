package leaderboardservice

import (
	"fmt"
	"strings"
	"time"

	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// NotYetPlayed marks a participant without a score for today.
const NotYetPlayed = "NYP"

// Entry is one participant's standing.
type Entry struct {
	Rank          int
	ParticipantID sharedtypes.ParticipantID
	DisplayName   string
	// TodayScore is nil when the participant has not played today.
	TodayScore *sharedtypes.Score
	DaysPlayed int
	Total      int
	Average    float64
}

// TodayDisplay renders today's score or NYP.
func (e Entry) TodayDisplay() string {
	if e.TodayScore == nil {
		return NotYetPlayed
	}
	return e.TodayScore.Display()
}

// AverageDisplay renders the average with two decimals.
func (e Entry) AverageDisplay() string {
	return fmt.Sprintf("%.2f", e.Average)
}

// Leaderboard is the ranked state of a tournament on a given day.
type Leaderboard struct {
	Tournament  *tournamentdb.Tournament
	Today       time.Time
	DaysElapsed int
	// NotStarted is set when the tournament starts after today; Entries is then empty.
	NotStarted bool
	Entries    []Entry
	// Daily holds each participant's scores in the elapsed window, keyed by day.
	Daily map[sharedtypes.ParticipantID]map[string]sharedtypes.Score
}

// Render formats the leaderboard as a chat message.
func (l *Leaderboard) Render() string {
	t := l.Tournament
	if l.NotStarted {
		return fmt.Sprintf("⏳ The tournament hasn't started yet. It begins on %s.", sharedtypes.FormatDay(t.StartDate))
	}

	var b strings.Builder
	b.WriteString("🏆 Tournament Leaderboard\n")
	fmt.Fprintf(&b, "%s to %s, day %d of %d\n\n",
		sharedtypes.FormatDay(t.StartDate),
		sharedtypes.FormatDay(t.EndDate),
		l.DaysElapsed,
		t.DurationDays(),
	)

	if len(l.Entries) == 0 {
		b.WriteString("No participants yet. Use /join to take part.")
		return b.String()
	}

	for _, e := range l.Entries {
		fmt.Fprintf(&b, "%d. %s | Today: %s | Avg: %s\n", e.Rank, e.DisplayName, e.TodayDisplay(), e.AverageDisplay())
	}
	return strings.TrimRight(b.String(), "\n")
}

// ExportFile is a rendered spreadsheet.
type ExportFile struct {
	Filename string
	Data     []byte
}
