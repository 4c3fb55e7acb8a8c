package tournamentdb

import (
	"testing"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/stretchr/testify/assert"
)

func TestTournamentKeyAndID(t *testing.T) {
	start := time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC)
	key := TournamentKey("-100200", start)

	assert.Equal(t, "-100200:2026-10-20", key)
	assert.Equal(t, TournamentID(key), TournamentID("-100200:2026-10-20"))
	assert.NotEqual(t, TournamentID(key), TournamentID(TournamentKey("-100200", start.AddDate(0, 0, 1))))
}

func TestTournament_WindowHelpers(t *testing.T) {
	tournament := &Tournament{
		StartDate:    time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC),
		Participants: []sharedtypes.ParticipantID{"1", "2"},
	}

	assert.Equal(t, 7, tournament.DurationDays())
	assert.True(t, tournament.HasParticipant("2"))
	assert.False(t, tournament.HasParticipant("3"))
	assert.True(t, tournament.Contains(time.Date(2026, 10, 20, 23, 59, 0, 0, time.UTC)))
	assert.True(t, tournament.Contains(time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)))
	assert.False(t, tournament.Contains(time.Date(2026, 10, 27, 0, 0, 0, 0, time.UTC)))
	assert.False(t, tournament.Contains(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
}
