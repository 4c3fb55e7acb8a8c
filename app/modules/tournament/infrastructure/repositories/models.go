package tournamentdb

import (
	"fmt"
	"slices"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status is the lifecycle state of a tournament.
type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// keyNamespace seeds the name-based tournament ids.
var keyNamespace = uuid.MustParse("6f1c2d8e-3b7a-4f0e-9a51-2c4e8b9d7a10")

// Tournament is one time-boxed competition in a group.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`
	ID            uuid.UUID                   `bun:"id,pk,type:uuid"`
	TournamentKey string                      `bun:"tournament_key,notnull,unique"`
	GroupID       sharedtypes.GroupID         `bun:"group_id,notnull"`
	StartDate     time.Time                   `bun:"start_date,type:date,notnull"`
	EndDate       time.Time                   `bun:"end_date,type:date,notnull"`
	Participants  []sharedtypes.ParticipantID `bun:"participants,type:jsonb,notnull"`
	CreatedBy     sharedtypes.ParticipantID   `bun:"created_by,notnull"`
	Status        Status                      `bun:"status,notnull"`
	RosterVersion int64                       `bun:"roster_version,notnull"`
	CreatedAt     time.Time                   `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                   `bun:",nullzero,notnull,default:current_timestamp"`
}

// TournamentKey derives the natural key of a group's tournament starting on start.
func TournamentKey(groupID sharedtypes.GroupID, start time.Time) string {
	return fmt.Sprintf("%s:%s", groupID, sharedtypes.FormatDay(start))
}

// TournamentID derives the tournament id from its key.
func TournamentID(key string) uuid.UUID {
	return uuid.NewSHA1(keyNamespace, []byte(key))
}

// DurationDays is the number of days in the inclusive window.
func (t *Tournament) DurationDays() int {
	return sharedtypes.DaysBetween(t.StartDate, t.EndDate) + 1
}

// HasParticipant reports whether id is on the roster.
func (t *Tournament) HasParticipant(id sharedtypes.ParticipantID) bool {
	return slices.Contains(t.Participants, id)
}

// Contains reports whether day falls inside the tournament window.
func (t *Tournament) Contains(day time.Time) bool {
	day = sharedtypes.Day(day)
	return !day.Before(sharedtypes.Day(t.StartDate)) && !day.After(sharedtypes.Day(t.EndDate))
}
