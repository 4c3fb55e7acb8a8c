package leaderboardservice

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLeaderboardService_ExportTournament(t *testing.T) {
	scores := NewFakeScoreRepository()
	scores.Seed("a", day(2026, 10, 17), 2, 3, 4)
	scores.Seed("b", day(2026, 10, 17), 8)
	reader := &FakeTournamentReader{Tournament: newTournament(day(2026, 10, 17), 5, "b", "a")}
	s := newTestService(reader, scores, FakeNames{"a": "Alice", "b": "Bob"}, testNow)

	res, err := s.ExportTournament(context.Background(), testGroup)
	require.NoError(t, err)
	require.True(t, res.IsSuccess())

	export := *res.Success
	require.Equal(t, "tournament_-100200300_2026-10-17.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{standingsSheet, dailySheet}, f.GetSheetList())

	standings, err := f.GetRows(standingsSheet)
	require.NoError(t, err)
	require.Len(t, standings, 3)
	require.Equal(t, []string{"Rank", "Player", "Today", "Days Played", "Total", "Average"}, standings[0])
	require.Equal(t, []string{"1", "Alice", "4", "3", "9", "3.00"}, standings[1])
	require.Equal(t, []string{"2", "Bob", "NYP", "1", "22", "7.33"}, standings[2])

	daily, err := f.GetRows(dailySheet)
	require.NoError(t, err)
	require.Equal(t, []string{"Player", "2026-10-17", "2026-10-18", "2026-10-19"}, daily[0])
	require.Equal(t, "Bob", daily[1][0])
	require.Equal(t, "X", daily[1][1])
	for _, cell := range daily[1][2:] {
		require.Empty(t, cell)
	}
	require.Equal(t, []string{"Alice", "2", "3", "4"}, daily[2])
}

func TestLeaderboardService_ExportTournament_NoActiveTournament(t *testing.T) {
	s := newTestService(&FakeTournamentReader{}, NewFakeScoreRepository(), FakeNames{}, testNow)

	res, err := s.ExportTournament(context.Background(), testGroup)
	require.NoError(t, err)
	require.True(t, res.IsFailure())
	require.ErrorIs(t, *res.Failure, ErrNoActiveTournament)
}
