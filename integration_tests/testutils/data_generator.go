package testutils

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator creates participants and groups for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// Participant is a generated chat user.
type Participant struct {
	ID          sharedtypes.ParticipantID
	DisplayName string
}

// NewTestDataGenerator creates a generator, seeded from the clock unless a seed is given.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// GenerateParticipants returns count participants with distinct ids.
func (g *TestDataGenerator) GenerateParticipants(count int) []Participant {
	seen := make(map[sharedtypes.ParticipantID]bool, count)
	out := make([]Participant, 0, count)
	for len(out) < count {
		id := sharedtypes.ParticipantID(g.faker.Numerify("#########"))
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Participant{ID: id, DisplayName: g.faker.FirstName()})
	}
	return out
}

// GenerateGroupID returns a group chat id in the negative-number form group chats use.
func (g *TestDataGenerator) GenerateGroupID() sharedtypes.GroupID {
	return sharedtypes.GroupID("-100" + g.faker.Numerify("#########"))
}

// GenerateScore returns a score from 1 to 7.
func (g *TestDataGenerator) GenerateScore() sharedtypes.Score {
	return sharedtypes.Score(g.faker.IntRange(1, sharedtypes.PenaltyScore))
}
