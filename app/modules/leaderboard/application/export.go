package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/xuri/excelize/v2"
)

const (
	standingsSheet = "Leaderboard"
	dailySheet     = "Daily Scores"
)

// ExportTournament renders the active tournament's standings and daily scores as a workbook.
func (s *LeaderboardService) ExportTournament(ctx context.Context, groupID sharedtypes.GroupID) (ExportOperationResult, error) {
	return withTelemetry(s, ctx, "ExportTournament", groupID.String(), func(ctx context.Context) (ExportOperationResult, error) {
		res, err := s.tournaments.GetActiveTournament(ctx, groupID)
		if err != nil {
			return ExportOperationResult{}, err
		}
		if res.IsFailure() {
			return results.FailureResult[*ExportFile, error](mapTournamentFailure(*res.Failure)), nil
		}

		board, err := s.compute(ctx, *res.Success, s.calendar.Today())
		if err != nil {
			return ExportOperationResult{}, err
		}

		data, err := BuildWorkbook(board)
		if err != nil {
			return ExportOperationResult{}, err
		}
		return results.SuccessResult[*ExportFile, error](&ExportFile{
			Filename: ExportFilename(board),
			Data:     data,
		}), nil
	})
}

// ExportFilename names the workbook after the group and the tournament start date.
func ExportFilename(board *Leaderboard) string {
	group := strings.NewReplacer("/", "_", ":", "_", " ", "_").Replace(board.Tournament.GroupID.String())
	return fmt.Sprintf("tournament_%s_%s.xlsx", group, sharedtypes.FormatDay(board.Tournament.StartDate))
}

// BuildWorkbook writes the standings sheet and a participant-by-day score grid.
func BuildWorkbook(board *Leaderboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), standingsSheet); err != nil {
		return nil, fmt.Errorf("failed to name standings sheet: %w", err)
	}
	if err := writeStandings(f, board); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, fmt.Errorf("failed to add daily sheet: %w", err)
	}
	if err := writeDaily(f, board); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeStandings(f *excelize.File, board *Leaderboard) error {
	rows := [][]interface{}{
		{"Rank", "Player", "Today", "Days Played", "Total", "Average"},
	}
	for _, e := range board.Entries {
		rows = append(rows, []interface{}{e.Rank, e.DisplayName, e.TodayDisplay(), e.DaysPlayed, e.Total, e.AverageDisplay()})
	}
	return setRows(f, standingsSheet, rows)
}

func writeDaily(f *excelize.File, board *Leaderboard) error {
	t := board.Tournament
	days := make([]time.Time, 0, board.DaysElapsed)
	for i := 0; i < board.DaysElapsed; i++ {
		days = append(days, sharedtypes.Day(t.StartDate).AddDate(0, 0, i))
	}

	header := []interface{}{"Player"}
	for _, d := range days {
		header = append(header, sharedtypes.FormatDay(d))
	}
	rows := [][]interface{}{header}

	for _, participantID := range t.Participants {
		name := participantID.String()
		for _, e := range board.Entries {
			if e.ParticipantID == participantID {
				name = e.DisplayName
				break
			}
		}
		row := []interface{}{name}
		daily := board.Daily[participantID]
		for _, d := range days {
			if score, ok := daily[sharedtypes.FormatDay(d)]; ok {
				row = append(row, score.Display())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return setRows(f, dailySheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", idx+1, err)
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}
