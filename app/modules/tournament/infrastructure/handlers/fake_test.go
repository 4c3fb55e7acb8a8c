package tournamenthandlers

import (
	"context"

	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// FakeTournamentService is a programmable fake for tournamentservice.Service.
type FakeTournamentService struct {
	trace []string

	CreateTournamentFunc    func(ctx context.Context, req tournamentservice.CreateTournamentRequest) (tournamentservice.CreateOperationResult, error)
	GetActiveTournamentFunc func(ctx context.Context, groupID sharedtypes.GroupID) (tournamentservice.TournamentOperationResult, error)
	JoinTournamentFunc      func(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (tournamentservice.RosterOperationResult, error)
	LeaveTournamentFunc     func(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (tournamentservice.RosterOperationResult, error)
}

func (f *FakeTournamentService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeTournamentService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTournamentService) CreateTournament(ctx context.Context, req tournamentservice.CreateTournamentRequest) (tournamentservice.CreateOperationResult, error) {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, req)
	}
	return tournamentservice.CreateOperationResult{}, nil
}

func (f *FakeTournamentService) GetActiveTournament(ctx context.Context, groupID sharedtypes.GroupID) (tournamentservice.TournamentOperationResult, error) {
	f.record("GetActiveTournament")
	if f.GetActiveTournamentFunc != nil {
		return f.GetActiveTournamentFunc(ctx, groupID)
	}
	return tournamentservice.TournamentOperationResult{}, nil
}

func (f *FakeTournamentService) JoinTournament(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (tournamentservice.RosterOperationResult, error) {
	f.record("JoinTournament")
	if f.JoinTournamentFunc != nil {
		return f.JoinTournamentFunc(ctx, groupID, participantID)
	}
	return tournamentservice.RosterOperationResult{}, nil
}

func (f *FakeTournamentService) LeaveTournament(ctx context.Context, groupID sharedtypes.GroupID, participantID sharedtypes.ParticipantID) (tournamentservice.RosterOperationResult, error) {
	f.record("LeaveTournament")
	if f.LeaveTournamentFunc != nil {
		return f.LeaveTournamentFunc(ctx, groupID, participantID)
	}
	return tournamentservice.RosterOperationResult{}, nil
}

var _ tournamentservice.Service = (*FakeTournamentService)(nil)

// FakeNames resolves names from a fixed map.
type FakeNames struct {
	Known      map[sharedtypes.ParticipantID]string
	Remembered map[sharedtypes.ParticipantID]string
}

func (f *FakeNames) Remember(_ context.Context, id sharedtypes.ParticipantID, hint string) {
	if f.Remembered == nil {
		f.Remembered = make(map[sharedtypes.ParticipantID]string)
	}
	f.Remembered[id] = hint
}

func (f *FakeNames) Resolve(_ context.Context, _ sharedtypes.GroupID, id sharedtypes.ParticipantID) string {
	if name, ok := f.Known[id]; ok {
		return name
	}
	return "Player " + id.String()
}
