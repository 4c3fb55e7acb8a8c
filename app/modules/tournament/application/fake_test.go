package tournamentservice

import (
	"context"
	"slices"
	"sync"

	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeTournamentRepository is an in-memory tournamentdb.Repository. The Func fields override
// individual methods.
type FakeTournamentRepository struct {
	mu          sync.Mutex
	trace       []string
	tournaments map[string]*tournamentdb.Tournament

	GetActiveTournamentFunc func(ctx context.Context, db bun.IDB, groupID sharedtypes.GroupID) (*tournamentdb.Tournament, error)
	CreateTournamentFunc    func(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) (bool, error)
	UpdateRosterFunc        func(ctx context.Context, db bun.IDB, id uuid.UUID, roster []sharedtypes.ParticipantID, expectedVersion int64) (int64, error)
}

func NewFakeTournamentRepository() *FakeTournamentRepository {
	return &FakeTournamentRepository{
		trace:       []string{},
		tournaments: map[string]*tournamentdb.Tournament{},
	}
}

func (f *FakeTournamentRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.trace)
}

// Seed stores a copy of t.
func (f *FakeTournamentRepository) Seed(t tournamentdb.Tournament) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.Participants = slices.Clone(t.Participants)
	f.tournaments[t.TournamentKey] = &t
}

// Count returns the number of stored tournaments.
func (f *FakeTournamentRepository) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tournaments)
}

// Stored returns a copy of the tournament with key.
func (f *FakeTournamentRepository) Stored(key string) (tournamentdb.Tournament, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[key]
	if !ok {
		return tournamentdb.Tournament{}, false
	}
	cp := *t
	cp.Participants = slices.Clone(t.Participants)
	return cp, true
}

func (f *FakeTournamentRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeTournamentRepository) GetActiveTournament(ctx context.Context, db bun.IDB, groupID sharedtypes.GroupID) (*tournamentdb.Tournament, error) {
	f.record("GetActiveTournament")
	if f.GetActiveTournamentFunc != nil {
		return f.GetActiveTournamentFunc(ctx, db, groupID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tournaments {
		if t.GroupID == groupID && t.Status == tournamentdb.StatusActive {
			cp := *t
			cp.Participants = slices.Clone(t.Participants)
			return &cp, nil
		}
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepository) GetTournamentByKey(ctx context.Context, db bun.IDB, key string) (*tournamentdb.Tournament, error) {
	f.record("GetTournamentByKey")
	t, ok := f.Stored(key)
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	return &t, nil
}

func (f *FakeTournamentRepository) CreateTournament(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) (bool, error) {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, db, tournament)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tournaments[tournament.TournamentKey]; ok {
		return false, nil
	}
	for _, t := range f.tournaments {
		if t.GroupID == tournament.GroupID && t.Status == tournamentdb.StatusActive && tournament.Status == tournamentdb.StatusActive {
			return false, tournamentdb.ErrActiveTournamentExists
		}
	}
	cp := *tournament
	cp.Participants = slices.Clone(tournament.Participants)
	f.tournaments[tournament.TournamentKey] = &cp
	return true, nil
}

func (f *FakeTournamentRepository) UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status tournamentdb.Status) error {
	f.record("UpdateStatus")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tournaments {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepository) UpdateRoster(ctx context.Context, db bun.IDB, id uuid.UUID, roster []sharedtypes.ParticipantID, expectedVersion int64) (int64, error) {
	f.record("UpdateRoster")
	if f.UpdateRosterFunc != nil {
		return f.UpdateRosterFunc(ctx, db, id, roster, expectedVersion)
	}
	return f.applyRoster(id, roster, expectedVersion)
}

// applyRoster is the compare-and-swap the real store performs.
func (f *FakeTournamentRepository) applyRoster(id uuid.UUID, roster []sharedtypes.ParticipantID, expectedVersion int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tournaments {
		if t.ID != id {
			continue
		}
		if t.RosterVersion != expectedVersion {
			return 0, tournamentdb.ErrRosterConflict
		}
		t.Participants = slices.Clone(roster)
		t.RosterVersion++
		return t.RosterVersion, nil
	}
	return 0, tournamentdb.ErrNotFound
}

var _ tournamentdb.Repository = (*FakeTournamentRepository)(nil)
