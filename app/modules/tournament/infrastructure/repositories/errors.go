package tournamentdb

import "errors"

var (
	// ErrNotFound is returned when no tournament matches the lookup.
	ErrNotFound = errors.New("tournament not found")
	// ErrRosterConflict is returned when the roster changed since it was read.
	ErrRosterConflict = errors.New("roster was modified concurrently")
	// ErrActiveTournamentExists is returned when the group already has an active tournament.
	ErrActiveTournamentExists = errors.New("group already has an active tournament")
)
