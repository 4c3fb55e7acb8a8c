package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestParticipantLimiter_SeparateBuckets(t *testing.T) {
	l := NewParticipantLimiter(rate.Every(time.Hour), 1)

	assert.True(t, l.Limiter("alice").Allow())
	assert.False(t, l.Limiter("alice").Allow(), "alice spent her only token")
	assert.True(t, l.Limiter("bob").Allow(), "bob has his own bucket")
	assert.Equal(t, 2, l.Len())
}

func TestParticipantLimiter_PrunesIdleEntries(t *testing.T) {
	l := NewParticipantLimiter(rate.Inf, 1)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	for i := 0; i <= cleanupThreshold; i++ {
		l.Limiter(fmt.Sprintf("p-%d", i))
	}
	require.Equal(t, cleanupThreshold+1, l.Len())

	l.now = func() time.Time { return base.Add(maxIdleAge + time.Minute) }
	l.Limiter("fresh")
	assert.Equal(t, 1, l.Len())
}

func TestParticipantLimiter_Middleware(t *testing.T) {
	l := NewParticipantLimiter(rate.Every(time.Hour), 1)
	calls := 0
	h := l.Middleware(func(msg *message.Message) ([]*message.Message, error) {
		calls++
		return nil, nil
	})

	first := message.NewMessage("1", nil)
	first.Metadata.Set(chatevents.MetadataParticipantID, "alice")
	_, err := h(first)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	second := message.NewMessage("2", nil)
	second.Metadata.Set(chatevents.MetadataParticipantID, "alice")
	second.SetContext(ctx)
	_, err = h(second)
	assert.Error(t, err, "second message waits past its deadline")

	anonymous := message.NewMessage("3", nil)
	_, err = h(anonymous)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}
