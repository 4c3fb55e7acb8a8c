// Package handlerwrapper adapts typed event handlers to watermill handler functions.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Result is one outgoing event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// HandlerFunc is a handler over a decoded payload.
type HandlerFunc[T any] func(ctx context.Context, payload *T) ([]Result, error)

// ErrInvalidPayload marks messages whose body could not be decoded. They are acked and
// dropped because redelivery cannot fix them.
var ErrInvalidPayload = errors.New("invalid message payload")

// WrapTransformingTyped decodes the message body into T, runs handler and publishes each
// returned Result to its topic, carrying the inbound correlation id along.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler HandlerFunc[T],
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := middleware.MessageCorrelationID(msg)
		ctx := observability.WithCorrelationID(msg.Context(), correlationID)

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("message.uuid", msg.UUID),
			attribute.String("correlation_id", correlationID),
		))
		defer span.End()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.WarnContext(ctx, "Dropping message with undecodable payload",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			span.SetStatus(codes.Error, ErrInvalidPayload.Error())
			return nil, nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		if len(results) == 0 {
			return nil, nil
		}

		for _, r := range results {
			out, err := NewMessage(correlationID, r)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			if err := publisher.Publish(r.Topic, out); err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("failed to publish to %s: %w", r.Topic, err)
			}
			logger.DebugContext(ctx, "Published handler result",
				attr.String("handler", handlerName),
				attr.String("topic", r.Topic),
				attr.String("message_id", out.UUID),
			)
		}

		return nil, nil
	}
}

// NewMessage marshals a Result into a watermill message.
func NewMessage(correlationID string, r Result) (*message.Message, error) {
	if r.Topic == "" {
		return nil, errors.New("result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", r.Topic, err)
	}

	out := message.NewMessage(watermill.NewUUID(), body)
	for k, v := range r.Metadata {
		out.Metadata.Set(k, v)
	}
	out.Metadata.Set("topic", r.Topic)
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, out)
	}
	return out, nil
}
