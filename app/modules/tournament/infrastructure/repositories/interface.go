package tournamentdb

import (
	"context"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the tournament store.
type Repository interface {
	// GetActiveTournament returns the group's active tournament or ErrNotFound.
	GetActiveTournament(ctx context.Context, db bun.IDB, groupID sharedtypes.GroupID) (*Tournament, error)
	GetTournamentByKey(ctx context.Context, db bun.IDB, key string) (*Tournament, error)
	// CreateTournament inserts the tournament unless one with the same key exists. It reports
	// whether a row was written.
	CreateTournament(ctx context.Context, db bun.IDB, tournament *Tournament) (bool, error)
	UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status Status) error
	// UpdateRoster replaces the roster only if the stored version still equals expectedVersion,
	// returning the new version or ErrRosterConflict.
	UpdateRoster(ctx context.Context, db bun.IDB, id uuid.UUID, roster []sharedtypes.ParticipantID, expectedVersion int64) (int64, error)
}
