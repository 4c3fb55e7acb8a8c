package displayname

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

type memoryCache struct {
	names  map[sharedtypes.ParticipantID]string
	getErr error
	setErr error
}

func (m *memoryCache) Get(_ context.Context, id sharedtypes.ParticipantID) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	name, ok := m.names[id]
	if !ok {
		return "", ErrNotCached
	}
	return name, nil
}

func (m *memoryCache) Set(_ context.Context, id sharedtypes.ParticipantID, name string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.names == nil {
		m.names = make(map[sharedtypes.ParticipantID]string)
	}
	m.names[id] = name
	return nil
}

type fakeRequester struct {
	calls   int
	subject string
	reply   string
	err     error
}

func (f *fakeRequester) RequestWithContext(_ context.Context, subj string, data []byte) (*nats.Msg, error) {
	f.calls++
	f.subject = subj
	if f.err != nil {
		return nil, f.err
	}
	var req chatevents.DisplayNameRequestV1
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &nats.Msg{Data: []byte(f.reply)}, nil
}

func TestResolver_Resolve(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		cache        *memoryCache
		requester    *fakeRequester
		want         string
		wantRequests int
		wantCached   string
	}{
		{
			name:      "cache hit skips the transport",
			cache:     &memoryCache{names: map[sharedtypes.ParticipantID]string{"123456": "Alice"}},
			requester: &fakeRequester{reply: `{"display_name":"Other"}`},
			want:      "Alice",
		},
		{
			name:         "cache miss asks the transport and caches the answer",
			cache:        &memoryCache{},
			requester:    &fakeRequester{reply: `{"display_name":" Bob "}`},
			want:         "Bob",
			wantRequests: 1,
			wantCached:   "Bob",
		},
		{
			name:         "transport timeout falls back to synthetic label",
			cache:        &memoryCache{},
			requester:    &fakeRequester{err: nats.ErrTimeout},
			want:         "Player 3456",
			wantRequests: 1,
		},
		{
			name:         "garbled reply falls back to synthetic label",
			cache:        &memoryCache{getErr: errors.New("redis down")},
			requester:    &fakeRequester{reply: `nope`},
			want:         "Player 3456",
			wantRequests: 1,
		},
		{
			name:         "empty reply falls back to synthetic label",
			cache:        &memoryCache{},
			requester:    &fakeRequester{reply: `{"display_name":""}`},
			want:         "Player 3456",
			wantRequests: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.cache, tt.requester, logger, time.Second)

			got := r.Resolve(context.Background(), "group-1", "123456")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRequests, tt.requester.calls)
			if tt.wantRequests > 0 {
				assert.Equal(t, chatevents.DisplayNameResolveV1, tt.requester.subject)
			}
			if tt.wantCached != "" {
				assert.Equal(t, tt.wantCached, tt.cache.names["123456"])
			}
		})
	}
}

func TestResolver_WithoutCollaborators(t *testing.T) {
	r := NewResolver(nil, nil, nil, 0)
	r.Remember(context.Background(), "42", "ignored")
	assert.Equal(t, "Player 42", r.Resolve(context.Background(), "", "42"))
}

func TestResolver_RememberIgnoresBlankHints(t *testing.T) {
	cache := &memoryCache{}
	r := NewResolver(cache, nil, nil, 0)

	r.Remember(context.Background(), "42", "   ")
	r.Remember(context.Background(), "", "Nameless")
	assert.Empty(t, cache.names)

	r.Remember(context.Background(), "42", "Zed")
	assert.Equal(t, "Zed", cache.names["42"])
}

func TestSyntheticLabel(t *testing.T) {
	assert.Equal(t, "Player 7890", SyntheticLabel("1234567890"))
	assert.Equal(t, "Player 12", SyntheticLabel("12"))
	assert.Equal(t, "Player ?", SyntheticLabel(""))
}
