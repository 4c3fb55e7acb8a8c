package clock

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// GameCalendar answers "what day is it" for the game. The daily puzzle rolls over at
// midnight in the configured location, not at midnight UTC.
type GameCalendar struct {
	clock Clock
	loc   *time.Location
}

// NewGameCalendar builds a calendar over clock in loc. A nil clock means the wall clock and
// a nil location means UTC.
func NewGameCalendar(c Clock, loc *time.Location) *GameCalendar {
	if c == nil {
		c = RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &GameCalendar{clock: c, loc: loc}
}

// Now returns the current time in the game location.
func (g *GameCalendar) Now() time.Time {
	return g.clock.Now().In(g.loc)
}

// Today returns today's calendar date.
func (g *GameCalendar) Today() time.Time {
	return sharedtypes.Day(g.Now())
}

// Location returns the game location.
func (g *GameCalendar) Location() *time.Location {
	return g.loc
}

// FakeClock is a Clock whose time is controlled by tests.
type FakeClock struct {
	NowFn func() time.Time
}

func (f *FakeClock) Now() time.Time {
	if f.NowFn != nil {
		return f.NowFn()
	}
	return time.Now()
}

// FixedClock returns a FakeClock frozen at t.
func FixedClock(t time.Time) *FakeClock {
	return &FakeClock{NowFn: func() time.Time { return t }}
}
