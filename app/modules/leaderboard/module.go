package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/infrastructure/router"
	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewLeaderboardModule creates and initializes a new leaderboard module. It reads tournaments
// through the tournament module and scores through the score module's repository.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	calendar *clock.GameCalendar,
	tournaments leaderboardservice.TournamentReader,
	scores scoredb.Repository,
	names leaderboardservice.NameResolver,
	concurrency int,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.TracerOrNoop()

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	metrics, err := obs.OperationMetrics("leaderboard")
	if err != nil {
		return nil, fmt.Errorf("failed to register leaderboard metrics: %w", err)
	}

	service := leaderboardservice.NewLeaderboardService(tournaments, scores, names, logger, metrics, tracer, calendar, concurrency)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, eventBus, tracer)
	if err := leaderboardRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		LeaderboardService: service,
		LeaderboardRouter:  leaderboardRouter,
		observability:      obs,
	}, nil
}

// Run starts the leaderboard module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close shuts down the leaderboard module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Leaderboard module stopped")
	return nil
}
