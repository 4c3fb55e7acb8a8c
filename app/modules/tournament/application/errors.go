package tournamentservice

import "errors"

var (
	ErrInvalidWindow           = errors.New("invalid tournament window")
	ErrNoActiveTournament      = errors.New("no active tournament")
	ErrAlreadyJoined           = errors.New("participant already joined")
	ErrNotInTournament         = errors.New("participant is not in the tournament")
	ErrRosterConflict          = errors.New("roster changed concurrently, giving up")
	ErrTournamentAlreadyActive = errors.New("group already has a running tournament")
	ErrStoreUnavailable        = errors.New("tournament store unavailable")
	ErrUnrecognizedDate        = errors.New("unrecognized date")
)
