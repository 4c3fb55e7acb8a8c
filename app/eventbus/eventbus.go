package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus publishes and consumes watermill messages.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// Config holds the connection settings for the JetStream event bus.
type Config struct {
	URL string
	// DurablePrefix names the durable consumer created for every subject.
	DurablePrefix  string
	AckWaitTimeout time.Duration
}

// JetStreamEventBus implements EventBus on NATS JetStream.
type JetStreamEventBus struct {
	publisher  *nats.Publisher
	subscriber *nats.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger
}

var _ EventBus = (*JetStreamEventBus)(nil)

// NewJetStreamEventBus connects to NATS and builds the watermill publisher and subscriber.
func NewJetStreamEventBus(cfg Config, logger *slog.Logger) (*JetStreamEventBus, error) {
	if cfg.DurablePrefix == "" {
		cfg.DurablePrefix = "wordle-bot"
	}
	if cfg.AckWaitTimeout <= 0 {
		cfg.AckWaitTimeout = 30 * time.Second
	}

	options := natsOptions(logger)

	natsConn, err := nc.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: options,
			Marshaler:   marshaler,
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              cfg.URL,
			SubscribersCount: 1,
			AckWaitTimeout:   cfg.AckWaitTimeout,
			CloseTimeout:     30 * time.Second,
			NatsOptions:      options,
			Unmarshaler:      marshaler,
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
				SubscribeOptions: []nc.SubOpt{
					nc.DeliverAll(),
					nc.AckExplicit(),
				},
				DurablePrefix:     cfg.DurablePrefix,
				DurableCalculator: durableName,
			},
		},
		watermillLogger,
	)
	if err != nil {
		_ = publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	return &JetStreamEventBus{
		publisher:  publisher,
		subscriber: subscriber,
		js:         js,
		natsConn:   natsConn,
		logger:     logger,
	}, nil
}

// durableName derives a consumer name per subject. Consumer names may not contain dots.
func durableName(prefix, topic string) string {
	return prefix + "_" + strings.NewReplacer(".", "_", "*", "any", ">", "all").Replace(topic)
}

func natsOptions(logger *slog.Logger) []nc.Option {
	return []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription",
					slog.String("subject", s.Subject),
					slog.String("queue", s.Queue),
					slog.Any("error", err),
				)
				return
			}
			logger.Error("Error in connection", slog.Any("error", err))
		}),
	}
}

// Publish publishes messages on topic.
func (b *JetStreamEventBus) Publish(topic string, msgs ...*message.Message) error {
	if err := b.publisher.Publish(topic, msgs...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe consumes topic.
func (b *JetStreamEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	b.logger.InfoContext(ctx, "Subscribing to subject", slog.String("subject", topic))
	return b.subscriber.Subscribe(ctx, topic)
}

// EnsureStreams creates or updates the streams the application relies on.
func (b *JetStreamEventBus) EnsureStreams(ctx context.Context, streams ...StreamDefinition) error {
	return EnsureStreams(ctx, b.js, b.logger, streams...)
}

// Conn exposes the underlying NATS connection for request/reply.
func (b *JetStreamEventBus) Conn() *nc.Conn {
	return b.natsConn
}

// Close closes all NATS and Watermill resources.
func (b *JetStreamEventBus) Close() error {
	var errs []error
	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if b.subscriber != nil {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	if b.natsConn != nil {
		b.natsConn.Close()
	}
	return errors.Join(errs...)
}
