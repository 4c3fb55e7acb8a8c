package scoreservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameResult(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    GameResult
		wantErr bool
	}{
		{
			name: "complete payload",
			raw:  `{"score": 3, "attempts": 3, "secret_word": "CRANE"}`,
			want: GameResult{Score: 3, Attempts: 3, SecretWord: "CRANE"},
		},
		{
			name: "failed game keeps the raw score",
			raw:  `{"score": 7, "attempts": 6, "secret_word": "PIOUS"}`,
			want: GameResult{Score: 7, Attempts: 6, SecretWord: "PIOUS"},
		},
		{
			name: "zero score is allowed",
			raw:  ` {"score": 0, "attempts": 0, "secret_word": "x"} `,
			want: GameResult{Score: 0, Attempts: 0, SecretWord: "x"},
		},
		{name: "not json", raw: `game over`, wantErr: true},
		{name: "empty body", raw: ``, wantErr: true},
		{name: "json null", raw: `null`, wantErr: true},
		{name: "array", raw: `[3, 3, "CRANE"]`, wantErr: true},
		{name: "missing score", raw: `{"attempts": 3, "secret_word": "CRANE"}`, wantErr: true},
		{name: "missing attempts", raw: `{"score": 3, "secret_word": "CRANE"}`, wantErr: true},
		{name: "missing secret word", raw: `{"score": 3, "attempts": 3}`, wantErr: true},
		{name: "score as string", raw: `{"score": "3", "attempts": 3, "secret_word": "CRANE"}`, wantErr: true},
		{name: "negative attempts", raw: `{"score": 3, "attempts": -1, "secret_word": "CRANE"}`, wantErr: true},
		{name: "score beyond column range", raw: `{"score": 99999999999, "attempts": 3, "secret_word": "CRANE"}`, wantErr: true},
		{name: "attempts beyond column range", raw: `{"score": 3, "attempts": 2147483648, "secret_word": "CRANE"}`, wantErr: true},
		{name: "trailing junk", raw: `{"score": 3, "attempts": 3, "secret_word": "CRANE"} trailing junk`, wantErr: true},
		{name: "two objects", raw: `{"score": 3, "attempts": 3, "secret_word": "CRANE"}{}`, wantErr: true},
		{name: "blank secret word", raw: `{"score": 3, "attempts": 3, "secret_word": "  "}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGameResult(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedResult)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmation_Message(t *testing.T) {
	c := &Confirmation{Score: 9, Attempts: 6, SecretWord: "PIOUS"}
	assert.Equal(t, "🏁 Game Over!\n\nSecret Word: PIOUS\nYour Score: X/6\nAttempts: 6", c.Message())
}
