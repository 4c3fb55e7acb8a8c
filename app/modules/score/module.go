package score

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	scoreservice "github.com/Black-And-White-Club/wordle-bot/app/modules/score/application"
	scorehandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/handlers"
	scoredb "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/repositories"
	scorerouter "github.com/Black-And-White-Club/wordle-bot/app/modules/score/infrastructure/router"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the score module.
type Module struct {
	ScoreService  scoreservice.Service
	ScoreRouter   *scorerouter.ScoreRouter
	Repository    scoredb.Repository
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewScoreModule creates and initializes a new score module.
func NewScoreModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	db *bun.DB,
	calendar *clock.GameCalendar,
	names scorehandlers.NameRecorder,
	webAppURL string,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.TracerOrNoop()

	logger.InfoContext(ctx, "score.NewScoreModule initializing")

	repo := scoredb.NewRepository(db)

	metrics, err := obs.OperationMetrics("score")
	if err != nil {
		return nil, fmt.Errorf("failed to register score metrics: %w", err)
	}

	service := scoreservice.NewScoreService(repo, logger, metrics, tracer, db, calendar)
	handlers := scorehandlers.NewScoreHandlers(service, names, logger, tracer, webAppURL)

	scoreRouter := scorerouter.NewScoreRouter(logger, router, eventBus, eventBus, tracer)
	if err := scoreRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure score router: %w", err)
	}

	return &Module{
		ScoreService:  service,
		ScoreRouter:   scoreRouter,
		Repository:    repo,
		observability: obs,
	}, nil
}

// Run starts the score module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting score module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Score module goroutine stopped")
}

// Close shuts down the score module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping score module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Score module stopped")
	return nil
}
