package tournamentservice

import (
	"fmt"
	"time"

	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

const (
	MinDurationDays = 1
	MaxDurationDays = 30
)

// CreateTournamentRequest carries the answers collected by the creation dialog.
type CreateTournamentRequest struct {
	GroupID      sharedtypes.GroupID
	CreatorID    sharedtypes.ParticipantID
	StartDate    time.Time
	DurationDays int
}

// CreatedTournament is the outcome of a create call. Created is false when an identical
// request had already produced the tournament.
type CreatedTournament struct {
	Tournament *tournamentdb.Tournament
	Created    bool
	// Superseded is the finished tournament archived to make room, if any.
	Superseded *tournamentdb.Tournament
}

// RosterChange is the outcome of a join or leave.
type RosterChange struct {
	Tournament    *tournamentdb.Tournament
	ParticipantID sharedtypes.ParticipantID
	Joined        bool
}

// ValidateDuration checks the duration bounds.
func ValidateDuration(durationDays int) error {
	if durationDays < MinDurationDays || durationDays > MaxDurationDays {
		return fmt.Errorf("%w: duration must be between %d and %d days, got %d",
			ErrInvalidWindow, MinDurationDays, MaxDurationDays, durationDays)
	}
	return nil
}

// ValidateWindow checks the duration bounds and that start is not before today.
func ValidateWindow(start time.Time, durationDays int, today time.Time) error {
	if err := ValidateDuration(durationDays); err != nil {
		return err
	}
	if sharedtypes.Day(start).Before(sharedtypes.Day(today)) {
		return fmt.Errorf("%w: start date %s is before %s",
			ErrInvalidWindow, sharedtypes.FormatDay(start), sharedtypes.FormatDay(today))
	}
	return nil
}

// EndDate returns the last day of a window of durationDays starting on start.
func EndDate(start time.Time, durationDays int) time.Time {
	return sharedtypes.Day(start).AddDate(0, 0, durationDays-1)
}
