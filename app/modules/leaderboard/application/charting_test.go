package leaderboardservice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestGenerateLeaderboardChart(t *testing.T) {
	board := &Leaderboard{
		Tournament:  newTournament(day(2026, 10, 17), 5, "a", "b"),
		DaysElapsed: 3,
		Entries: []Entry{
			{Rank: 1, ParticipantID: "a", DisplayName: "Alice", Average: 3},
			{Rank: 2, ParticipantID: "b", DisplayName: "Bob", Average: 16.0 / 3},
		},
	}

	data, err := GenerateLeaderboardChart(board, DefaultChartPalette)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestGenerateLeaderboardChart_EqualAverages(t *testing.T) {
	board := &Leaderboard{
		Tournament:  newTournament(day(2026, 10, 19), 1, "a", "b"),
		DaysElapsed: 1,
		Entries: []Entry{
			{Rank: 1, ParticipantID: "a", DisplayName: "Alice", Average: 4},
			{Rank: 1, ParticipantID: "b", DisplayName: "Bob", Average: 4},
		},
	}

	data, err := GenerateLeaderboardChart(board, DefaultChartPalette)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, pngMagic))
}
