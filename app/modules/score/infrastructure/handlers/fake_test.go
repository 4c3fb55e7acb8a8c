package scorehandlers

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/wordle-bot/app/modules/score/application"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
)

// FakeScoreService is a programmable fake for scoreservice.Service.
type FakeScoreService struct {
	trace []string

	RecordScoreFunc func(ctx context.Context, participantID sharedtypes.ParticipantID, result scoreservice.GameResult) (scoreservice.ScoreOperationResult, error)
}

func (f *FakeScoreService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreService) RecordScore(ctx context.Context, participantID sharedtypes.ParticipantID, result scoreservice.GameResult) (scoreservice.ScoreOperationResult, error) {
	f.record("RecordScore")
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, participantID, result)
	}
	return scoreservice.ScoreOperationResult{}, nil
}

var _ scoreservice.Service = (*FakeScoreService)(nil)

// FakeNameRecorder records remembered display hints.
type FakeNameRecorder struct {
	Names map[sharedtypes.ParticipantID]string
}

func (f *FakeNameRecorder) Remember(_ context.Context, id sharedtypes.ParticipantID, hint string) {
	if f.Names == nil {
		f.Names = make(map[sharedtypes.ParticipantID]string)
	}
	f.Names[id] = hint
}
