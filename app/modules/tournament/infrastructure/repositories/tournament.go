package tournamentdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const uniqueViolation = "23505"

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new tournament repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetActiveTournament returns the group's active tournament.
func (r *Impl) GetActiveTournament(ctx context.Context, db bun.IDB, groupID sharedtypes.GroupID) (*Tournament, error) {
	db = r.resolveDB(db)
	tournament := new(Tournament)
	err := db.NewSelect().
		Model(tournament).
		Where("group_id = ?", groupID).
		Where("status = ?", StatusActive).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active tournament for group %s: %w", groupID, err)
	}
	return tournament, nil
}

// GetTournamentByKey returns the tournament with the given natural key.
func (r *Impl) GetTournamentByKey(ctx context.Context, db bun.IDB, key string) (*Tournament, error) {
	db = r.resolveDB(db)
	tournament := new(Tournament)
	err := db.NewSelect().
		Model(tournament).
		Where("tournament_key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", key, err)
	}
	return tournament, nil
}

// CreateTournament inserts the tournament. A duplicate key is not an error; a second active
// tournament in the same group is.
func (r *Impl) CreateTournament(ctx context.Context, db bun.IDB, tournament *Tournament) (bool, error) {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	tournament.StartDate = sharedtypes.Day(tournament.StartDate)
	tournament.EndDate = sharedtypes.Day(tournament.EndDate)
	if tournament.Participants == nil {
		tournament.Participants = []sharedtypes.ParticipantID{}
	}
	tournament.CreatedAt = now
	tournament.UpdatedAt = now

	res, err := db.NewInsert().
		Model(tournament).
		On("CONFLICT (tournament_key) DO NOTHING").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrActiveTournamentExists
		}
		return false, fmt.Errorf("failed to create tournament %s: %w", tournament.TournamentKey, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return rows > 0, nil
}

// UpdateStatus sets the tournament status.
func (r *Impl) UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status Status) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Tournament)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update status of tournament %s: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRoster writes the roster with a compare-and-swap on roster_version.
func (r *Impl) UpdateRoster(ctx context.Context, db bun.IDB, id uuid.UUID, roster []sharedtypes.ParticipantID, expectedVersion int64) (int64, error) {
	db = r.resolveDB(db)
	if roster == nil {
		roster = []sharedtypes.ParticipantID{}
	}
	encoded, err := json.Marshal(roster)
	if err != nil {
		return 0, fmt.Errorf("failed to encode roster: %w", err)
	}

	res, err := db.NewUpdate().
		Model((*Tournament)(nil)).
		Set("participants = ?::jsonb", string(encoded)).
		Set("roster_version = roster_version + 1").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("roster_version = ?", expectedVersion).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to update roster of tournament %s: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return 0, ErrRosterConflict
	}
	return expectedVersion + 1, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	// Connections opened through pgx's database/sql driver report *pgconn.PgError.
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolation
	}
	return false
}
