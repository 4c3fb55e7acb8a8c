package sharedtypes

import (
	"fmt"
	"strconv"
	"time"
)

// GroupID identifies the group chat a tournament belongs to.
type GroupID string

// ParticipantID is the chat transport's stable identifier for a user.
type ParticipantID string

func (p ParticipantID) String() string { return string(p) }

func (g GroupID) String() string { return string(g) }

const (
	// MaxAttempts is the number of guesses allowed in one game.
	MaxAttempts = 6
	// PenaltyScore is charged for every elapsed tournament day without a submission.
	PenaltyScore = MaxAttempts + 1
	// DateLayout is the calendar format accepted from users and used for storage keys.
	DateLayout = "2006-01-02"
)

// Score is the raw number of attempts a participant needed. Values above MaxAttempts mean
// the participant did not finish.
type Score int

// DidNotFinish reports whether the score encodes a failed game.
func (s Score) DidNotFinish() bool {
	return int(s) > MaxAttempts
}

// Display renders the score the way it is shown in chat: the attempt count, or "X" for a
// failed game.
func (s Score) Display() string {
	if s.DidNotFinish() {
		return "X"
	}
	return strconv.Itoa(int(s))
}

// DisplayOutOfMax renders the score as "<n>/6" or "X/6".
func (s Score) DisplayOutOfMax() string {
	return fmt.Sprintf("%s/%d", s.Display(), MaxAttempts)
}

// Day truncates t to its calendar date in t's own location and returns that date at
// midnight UTC, so dates from different zones compare by calendar day only.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// FormatDay formats a calendar date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
