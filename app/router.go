package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/ratelimit"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// newRouter builds the watermill router every module registers on. Handler errors are
// retried, then the message is moved to the dead letter topic.
func newRouter(logger *slog.Logger, bus eventbus.EventBus, cfg *config.Config, registry *prometheus.Registry) (*message.Router, error) {
	watermillLogger := watermill.NewSlogLogger(logger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}

	if registry != nil && cfg.Observability.Environment != "test" {
		metricsBuilder := metrics.NewPrometheusMetricsBuilder(registry, "wordle_bot", "")
		metricsBuilder.AddPrometheusRouterMetrics(router)
	} else {
		logger.Info("Skipping Prometheus router metrics middleware")
	}

	poisonQueue, err := middleware.PoisonQueue(bus, chatevents.DeadLetterV1)
	if err != nil {
		return nil, fmt.Errorf("failed to create poison queue middleware: %w", err)
	}

	limiter := ratelimit.NewParticipantLimiter(rate.Limit(cfg.Runtime.RateLimit), cfg.Runtime.RateBurst)

	router.AddMiddleware(
		middleware.CorrelationID,
		poisonQueue,
		limiter.Middleware,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermillLogger,
		}.Middleware,
		middleware.Timeout(cfg.Runtime.RequestTimeout),
		middleware.Recoverer,
	)
	return router, nil
}
