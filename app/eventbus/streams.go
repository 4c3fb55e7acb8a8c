package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// StreamDefinition names a stream and the subjects it captures.
type StreamDefinition struct {
	Name     string
	Subjects []string
	MaxAge   time.Duration
}

// DefaultStream captures every subject under name.
func DefaultStream(name string) StreamDefinition {
	return StreamDefinition{
		Name:     name,
		Subjects: []string{name + ".>"},
		MaxAge:   7 * 24 * time.Hour,
	}
}

// StreamManager is the subset of jetstream.JetStream used for provisioning.
type StreamManager interface {
	CreateOrUpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// EnsureStreams creates missing streams and reconciles the subjects of existing ones.
func EnsureStreams(ctx context.Context, js StreamManager, logger *slog.Logger, streams ...StreamDefinition) error {
	for _, def := range streams {
		if !isValidStreamName(def.Name) {
			return fmt.Errorf("invalid stream name: %q", def.Name)
		}
		if len(def.Subjects) == 0 {
			return errors.New("stream " + def.Name + " has no subjects")
		}

		_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:      def.Name,
			Subjects:  def.Subjects,
			MaxAge:    def.MaxAge,
			Retention: jetstream.LimitsPolicy,
			Storage:   jetstream.FileStorage,
		})
		if err != nil {
			logger.ErrorContext(ctx, "Failed to provision JetStream stream",
				slog.String("stream", def.Name),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to provision stream %s: %w", def.Name, err)
		}
		logger.InfoContext(ctx, "JetStream stream ready",
			slog.String("stream", def.Name),
			slog.Any("subjects", def.Subjects),
		)
	}
	return nil
}

// isValidStreamName checks if a stream name is valid according to NATS rules.
// Names may only contain alphanumerics, hyphens and underscores and may not start or end
// with a hyphen.
func isValidStreamName(name string) bool {
	for _, r := range name {
		if !isValidRune(r) {
			return false
		}
	}
	return name != "" && name[0] != '-' && name[len(name)-1] != '-'
}

func isValidRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}
