package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultConcurrency bounds the per-participant score reads of one leaderboard.
const DefaultConcurrency = 8

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	tournaments TournamentReader
	scores      scoredb.Repository
	names       NameResolver
	logger      *slog.Logger
	metrics     observability.OperationMetrics
	tracer      trace.Tracer
	calendar    *clock.GameCalendar
	concurrency int
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	tournaments TournamentReader,
	scores scoredb.Repository,
	names NameResolver,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	calendar *clock.GameCalendar,
	concurrency int,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if calendar == nil {
		calendar = clock.NewGameCalendar(nil, nil)
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &LeaderboardService{
		tournaments: tournaments,
		scores:      scores,
		names:       names,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		calendar:    calendar,
		concurrency: concurrency,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, "LeaderboardService")
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "LeaderboardService", time.Since(startTime))
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				observability.CorrelationAttr(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "LeaderboardService")
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			observability.CorrelationAttr(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "LeaderboardService")
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			observability.CorrelationAttr(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "LeaderboardService")
	}
	return result, nil
}
