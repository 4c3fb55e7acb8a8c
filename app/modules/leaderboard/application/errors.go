package leaderboardservice

import "errors"

var (
	ErrNoActiveTournament = errors.New("no active tournament")
	ErrStoreUnavailable   = errors.New("score store unavailable")
)
