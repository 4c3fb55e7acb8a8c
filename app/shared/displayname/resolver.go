// Package displayname turns participant ids into human readable labels.
package displayname

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	sharedtypes "github.com/Black-And-White-Club/wordle-bot/app/shared/types"
	"github.com/nats-io/nats.go"
)

// Cache stores names between requests.
type Cache interface {
	Get(ctx context.Context, id sharedtypes.ParticipantID) (string, error)
	Set(ctx context.Context, id sharedtypes.ParticipantID, name string) error
}

// Requester is the request/reply half of a NATS connection.
type Requester interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

// Resolver looks names up in the cache, then asks the chat transport, then falls back to
// a synthetic label. Either collaborator may be nil.
type Resolver struct {
	cache          Cache
	requester      Requester
	logger         *slog.Logger
	requestTimeout time.Duration
}

// NewResolver creates a Resolver.
func NewResolver(cache Cache, requester Requester, logger *slog.Logger, requestTimeout time.Duration) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if requestTimeout <= 0 {
		requestTimeout = 2 * time.Second
	}
	return &Resolver{
		cache:          cache,
		requester:      requester,
		logger:         logger,
		requestTimeout: requestTimeout,
	}
}

// Remember stores a display hint the transport attached to an inbound event.
func (r *Resolver) Remember(ctx context.Context, id sharedtypes.ParticipantID, hint string) {
	hint = strings.TrimSpace(hint)
	if r.cache == nil || hint == "" || id == "" {
		return
	}
	if err := r.cache.Set(ctx, id, hint); err != nil {
		r.logger.WarnContext(ctx, "Failed to cache display name",
			attr.String("participant_id", id.String()),
			attr.Error(err),
		)
	}
}

// Resolve never fails: every lookup error degrades to the synthetic label.
func (r *Resolver) Resolve(ctx context.Context, groupID sharedtypes.GroupID, id sharedtypes.ParticipantID) string {
	if r.cache != nil {
		name, err := r.cache.Get(ctx, id)
		if err == nil && name != "" {
			return name
		}
		if err != nil && !errors.Is(err, ErrNotCached) {
			r.logger.WarnContext(ctx, "Display name cache lookup failed",
				attr.String("participant_id", id.String()),
				attr.Error(err),
			)
		}
	}

	if r.requester != nil {
		name, err := r.request(ctx, groupID, id)
		if err == nil && name != "" {
			r.Remember(ctx, id, name)
			return name
		}
		if err != nil {
			r.logger.WarnContext(ctx, "Display name request failed",
				attr.String("participant_id", id.String()),
				attr.Error(err),
			)
		}
	}

	return SyntheticLabel(id)
}

func (r *Resolver) request(ctx context.Context, groupID sharedtypes.GroupID, id sharedtypes.ParticipantID) (string, error) {
	body, err := json.Marshal(chatevents.DisplayNameRequestV1{ParticipantID: id, GroupID: groupID})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.requestTimeout)
	defer cancel()

	reply, err := r.requester.RequestWithContext(ctx, chatevents.DisplayNameResolveV1, body)
	if err != nil {
		return "", err
	}

	var resp chatevents.DisplayNameResponseV1
	if err := json.Unmarshal(reply.Data, &resp); err != nil {
		return "", fmt.Errorf("invalid display name reply: %w", err)
	}
	return strings.TrimSpace(resp.DisplayName), nil
}

// SyntheticLabel derives a stable label from the participant id.
func SyntheticLabel(id sharedtypes.ParticipantID) string {
	s := string(id)
	if s == "" {
		return "Player ?"
	}
	if len(s) > 4 {
		s = s[len(s)-4:]
	}
	return "Player " + s
}
