package tournamentservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateParser_Parse(t *testing.T) {
	parser := NewDateParser()
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "fixed format", input: "2026-10-25", want: day(2026, 10, 25)},
		{name: "fixed format with spaces", input: "  2026-11-01 ", want: day(2026, 11, 1)},
		{name: "tomorrow", input: "tomorrow", want: day(2026, 10, 20)},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "day out of range for month", input: "2026-02-30", wantErr: true},
		{name: "day out of range", input: "2026-10-32", wantErr: true},
		{name: "month out of range", input: "2026-13-01", wantErr: true},
		{name: "date mentioned in passing", input: "no thanks, maybe at 5pm", wantErr: true},
		{name: "trailing words", input: "tomorrow i guess", wantErr: true},
		{name: "empty", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnrecognizedDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateParser_UsesLocalCalendarDay(t *testing.T) {
	parser := NewDateParser()
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 20:00 UTC on the 19th is already the 20th in UTC+10.
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC).In(loc)

	got, err := parser.Parse("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, day(2026, 10, 21), got)
}
