package scoreservice

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// GameResult is the payload the game client sends when a game ends.
type GameResult struct {
	Score      sharedtypes.Score
	Attempts   int
	SecretWord string
}

// gameResultWire keeps every field optional so missing keys can be told apart from zeroes.
type gameResultWire struct {
	Score      *int    `json:"score"`
	Attempts   *int    `json:"attempts"`
	SecretWord *string `json:"secret_word"`
}

// ParseGameResult decodes the raw web-app payload. Any missing field, wrong type or
// non-JSON body yields ErrMalformedResult.
func ParseGameResult(raw string) (GameResult, error) {
	var wire gameResultWire
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &wire); err != nil {
		return GameResult{}, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}

	switch {
	case wire.Score == nil:
		return GameResult{}, fmt.Errorf("%w: missing score", ErrMalformedResult)
	case wire.Attempts == nil:
		return GameResult{}, fmt.Errorf("%w: missing attempts", ErrMalformedResult)
	case wire.SecretWord == nil:
		return GameResult{}, fmt.Errorf("%w: missing secret_word", ErrMalformedResult)
	}

	result := GameResult{
		Score:      sharedtypes.Score(*wire.Score),
		Attempts:   *wire.Attempts,
		SecretWord: *wire.SecretWord,
	}
	if err := result.Validate(); err != nil {
		return GameResult{}, err
	}
	return result, nil
}

// Validate checks the ranges the store relies on. Both counts must fit the integer columns.
func (r GameResult) Validate() error {
	if r.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrMalformedResult, r.Score)
	}
	if r.Score > math.MaxInt32 {
		return fmt.Errorf("%w: score %d out of range", ErrMalformedResult, r.Score)
	}
	if r.Attempts < 0 {
		return fmt.Errorf("%w: negative attempts %d", ErrMalformedResult, r.Attempts)
	}
	if r.Attempts > math.MaxInt32 {
		return fmt.Errorf("%w: attempts %d out of range", ErrMalformedResult, r.Attempts)
	}
	if strings.TrimSpace(r.SecretWord) == "" {
		return fmt.Errorf("%w: empty secret_word", ErrMalformedResult)
	}
	return nil
}

// Confirmation describes a stored result.
type Confirmation struct {
	ParticipantID sharedtypes.ParticipantID
	Date          time.Time
	Score         sharedtypes.Score
	Attempts      int
	SecretWord    string
	// Replaced is true when an earlier score for the same day was overwritten.
	Replaced bool
}

// Message is the text sent back to the player.
func (c *Confirmation) Message() string {
	return fmt.Sprintf("🏁 Game Over!\n\nSecret Word: %s\nYour Score: %s\nAttempts: %d",
		c.SecretWord, c.Score.DisplayOutOfMax(), c.Attempts)
}
