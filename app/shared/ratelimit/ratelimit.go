// Package ratelimit throttles inbound chat events per participant.
package ratelimit

import (
	"sync"
	"time"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/ThreeDotsLabs/watermill/message"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is how long an idle participant keeps its limiter.
	maxIdleAge = 10 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ParticipantLimiter hands out one token bucket per participant.
type ParticipantLimiter struct {
	mu           sync.Mutex
	participants map[string]*entry
	r            rate.Limit
	b            int
	now          func() time.Time
}

// NewParticipantLimiter allows r events per second with bursts of b for every participant.
func NewParticipantLimiter(r rate.Limit, b int) *ParticipantLimiter {
	return &ParticipantLimiter{
		participants: make(map[string]*entry),
		r:            r,
		b:            b,
		now:          time.Now,
	}
}

// Limiter returns the bucket for participantID, pruning stale buckets once the map grows.
func (l *ParticipantLimiter) Limiter(participantID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.participants) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.participants {
			if e.lastSeen.Before(cutoff) {
				delete(l.participants, k)
			}
		}
	}

	e, ok := l.participants[participantID]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.r, l.b)}
		l.participants[participantID] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Len reports how many participants currently hold a bucket.
func (l *ParticipantLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.participants)
}

// Middleware delays a participant's messages until their bucket has a token. Messages are
// never dropped; a cancelled message context aborts the wait and the message is retried.
func (l *ParticipantLimiter) Middleware(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		participantID := msg.Metadata.Get(chatevents.MetadataParticipantID)
		if participantID == "" {
			return h(msg)
		}
		if err := l.Limiter(participantID).Wait(msg.Context()); err != nil {
			return nil, err
		}
		return h(msg)
	}
}
