package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStreamManager struct {
	configs []jetstream.StreamConfig
	err     error
}

func (f *fakeStreamManager) CreateOrUpdateStream(_ context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	f.configs = append(f.configs, cfg)
	return nil, f.err
}

func TestEnsureStreams(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		streams   []StreamDefinition
		err       error
		wantErr   bool
		wantCalls int
	}{
		{name: "default stream", streams: []StreamDefinition{DefaultStream("wordle")}, wantCalls: 1},
		{name: "invalid name rejected before calling nats", streams: []StreamDefinition{DefaultStream("wordle.chat")}, wantErr: true},
		{name: "no subjects", streams: []StreamDefinition{{Name: "empty"}}, wantErr: true},
		{name: "server error", streams: []StreamDefinition{DefaultStream("wordle")}, err: errors.New("no responders"), wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js := &fakeStreamManager{err: tt.err}
			err := EnsureStreams(context.Background(), js, logger, tt.streams...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, js.configs, tt.wantCalls)
		})
	}
}

func TestDefaultStream(t *testing.T) {
	def := DefaultStream("wordle")
	assert.Equal(t, []string{"wordle.>"}, def.Subjects)
	assert.Positive(t, def.MaxAge)
}

func TestIsValidStreamName(t *testing.T) {
	assert.True(t, isValidStreamName("wordle"))
	assert.True(t, isValidStreamName("wordle_bot-1"))
	assert.False(t, isValidStreamName(""))
	assert.False(t, isValidStreamName("-wordle"))
	assert.False(t, isValidStreamName("wordle-"))
	assert.False(t, isValidStreamName("wordle.chat"))
	assert.False(t, isValidStreamName("wordle chat"))
}

func TestDurableName(t *testing.T) {
	assert.Equal(t, "wordle-bot_wordle_chat_play_v1", durableName("wordle-bot", "wordle.chat.play.v1"))
	assert.Equal(t, "p_wordle_all", durableName("p", "wordle.>"))
	assert.True(t, isValidStreamName(durableName("wordle-bot", "wordle.chat.tournament.join.v1")))
}
