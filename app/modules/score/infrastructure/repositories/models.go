package scoredb

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/uptrace/bun"
)

// DailyScore is one participant's result for one calendar day.
type DailyScore struct {
	bun.BaseModel `bun:"table:daily_scores,alias:ds"`

	ParticipantID sharedtypes.ParticipantID `bun:"participant_id,pk,type:varchar(64)"`
	ScoreDate     time.Time                 `bun:"score_date,pk,type:date"`
	Score         sharedtypes.Score         `bun:"score,notnull"`
	Attempts      int                       `bun:"attempts,notnull"`
	CreatedAt     time.Time                 `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                 `bun:"updated_at,notnull,default:current_timestamp"`
}
