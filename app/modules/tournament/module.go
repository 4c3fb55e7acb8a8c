package tournament

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	tournamentservice "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/application"
	tournamenthandlers "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/handlers"
	tournamentdb "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/repositories"
	tournamentrouter "github.com/Black-And-White-Club/wordle-bot/app/modules/tournament/infrastructure/router"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the tournament module.
type Module struct {
	TournamentService tournamentservice.Service
	TournamentRouter  *tournamentrouter.TournamentRouter
	Sessions          *tournamentservice.SessionStore
	cancelFunc        context.CancelFunc
	observability     observability.Observability
}

// NewTournamentModule creates and initializes a new tournament module.
func NewTournamentModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	db *bun.DB,
	calendar *clock.GameCalendar,
	names tournamenthandlers.Names,
	dialogTTL time.Duration,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.TracerOrNoop()

	logger.InfoContext(ctx, "tournament.NewTournamentModule initializing")

	repo := tournamentdb.NewRepository(db)

	metrics, err := obs.OperationMetrics("tournament")
	if err != nil {
		return nil, fmt.Errorf("failed to register tournament metrics: %w", err)
	}

	service := tournamentservice.NewTournamentService(repo, logger, metrics, tracer, db, calendar)

	sessions := tournamentservice.NewSessionStore(dialogTTL, nil)
	dialog := tournamentservice.NewCreationDialog(
		sessions,
		service,
		tournamentservice.NewDateParser(),
		calendar,
		logger,
		tracer,
	)

	handlers := tournamenthandlers.NewTournamentHandlers(service, dialog, names, logger, tracer)

	tournamentRouter := tournamentrouter.NewTournamentRouter(logger, router, eventBus, eventBus, tracer)
	if err := tournamentRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	return &Module{
		TournamentService: service,
		TournamentRouter:  tournamentRouter,
		Sessions:          sessions,
		observability:     obs,
	}, nil
}

// Run starts the tournament module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Tournament module goroutine stopped")
}

// Close shuts down the tournament module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Tournament module stopped")
	return nil
}
