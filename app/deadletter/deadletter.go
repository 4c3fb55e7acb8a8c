// Package deadletter apologizes to the chat of every message whose handler gave up.
package deadletter

import (
	"encoding/json"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// ApologyText is sent when a request could not be processed.
const ApologyText = "😔 Sorry, something went wrong. Please try again later."

const handlerName = "deadletter." + chatevents.DeadLetterV1

// Handler consumes the dead letter topic.
type Handler struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(publisher message.Publisher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{publisher: publisher, logger: logger}
}

// Register adds the handler to router.
func (h *Handler) Register(router *message.Router, subscriber message.Subscriber) {
	router.AddHandler(handlerName, chatevents.DeadLetterV1, subscriber, "", h.publisher, h.Handle)
}

// Handle logs the poisoned message and sends the apology. It never fails: a dead letter
// that errored would be poisoned again.
func (h *Handler) Handle(msg *message.Message) ([]*message.Message, error) {
	ctx := msg.Context()
	logger := h.logger.With(
		attr.String("message_id", msg.UUID),
		attr.CorrelationIDFromMsg(msg),
		attr.String("poisoned_topic", msg.Metadata.Get(middleware.PoisonedTopicKey)),
		attr.String("poisoned_handler", msg.Metadata.Get(middleware.PoisonedHandlerKey)),
		attr.String("reason", msg.Metadata.Get(middleware.ReasonForPoisonedKey)),
	)
	logger.ErrorContext(ctx, "Message dead-lettered")

	chatID := ChatID(msg)
	if chatID == "" {
		logger.WarnContext(ctx, "Dead letter has no chat to notify")
		return nil, nil
	}

	out, err := handlerwrapper.NewMessage(middleware.MessageCorrelationID(msg), handlerwrapper.Result{
		Topic:   chatevents.SendTextV1,
		Payload: &chatevents.SendTextPayloadV1{Destination: chatID, Text: ApologyText},
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build apology", attr.Error(err))
		return nil, nil
	}
	if err := h.publisher.Publish(chatevents.SendTextV1, out); err != nil {
		logger.ErrorContext(ctx, "Failed to publish apology", attr.String("chat_id", chatID), attr.Error(err))
	}
	return nil, nil
}

// ChatID finds the originating conversation in the message metadata, falling back to the
// inbound event envelope.
func ChatID(msg *message.Message) string {
	if id := msg.Metadata.Get(chatevents.MetadataChatID); id != "" {
		return id
	}
	var event chatevents.ChatEventV1
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return ""
	}
	return event.ChatID
}
