package tournamentservice

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// fixedDateShape matches input written in the YYYY-MM-DD form, valid or not.
var fixedDateShape = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// DateParser reads start dates typed into the creation dialog. The YYYY-MM-DD form is always
// accepted; phrases such as "tomorrow" or "next friday" are resolved relative to now.
type DateParser struct {
	w *when.Parser
}

// NewDateParser creates a DateParser with the English rule set.
func NewDateParser() *DateParser {
	w := when.New(nil)
	w.Add(en.All...)
	return &DateParser{w: w}
}

// Parse returns the calendar date named by input.
func (p *DateParser) Parse(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnrecognizedDate
	}

	if fixedDateShape.MatchString(input) {
		day, err := sharedtypes.ParseDay(input)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", ErrUnrecognizedDate, err)
		}
		return day, nil
	}

	text := strings.ToLower(input)
	r, err := p.w.Parse(text, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrUnrecognizedDate, err)
	}
	// The phrase must be the whole answer, not a date mentioned in passing.
	if r == nil || r.Index != 0 || len(r.Text) != len(text) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, input)
	}
	return sharedtypes.Day(r.Time.In(now.Location())), nil
}
