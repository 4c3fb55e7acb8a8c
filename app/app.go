package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/wordle-bot/app/deadletter"
	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	chatevents "github.com/Black-And-White-Club/wordle-bot/app/events/chat"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/score"
	"github.com/Black-And-White-Club/wordle-bot/app/modules/tournament"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/clock"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/displayname"
	"github.com/Black-And-White-Club/wordle-bot/app/shared/observability"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/db/bundb"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"
)

// App holds every long-lived component of the bot.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.JetStreamEventBus
	Router        *message.Router
	HTTPServer    *http.Server

	Modules struct {
		Score       *score.Module
		Tournament  *tournament.Module
		Leaderboard *leaderboard.Module
	}

	nameCache *displayname.RedisCache
	wg        sync.WaitGroup
}

// Initialize connects to the backing services and wires the modules.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app.Config = cfg

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.Observability = observability.Observability{
		Logger:   logger,
		Registry: registry,
	}

	db, err := bundb.NewBunDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	app.DB = db
	if err := bundb.RunMigrations(ctx, db, logger); err != nil {
		return err
	}

	bus, err := eventbus.NewJetStreamEventBus(eventbus.Config{
		URL:           cfg.NATS.URL,
		DurablePrefix: cfg.NATS.DurablePrefix,
	}, logger)
	if err != nil {
		return err
	}
	app.EventBus = bus
	if err := bus.EnsureStreams(ctx, eventbus.DefaultStream(chatevents.StreamName)); err != nil {
		return err
	}

	router, err := newRouter(logger, bus, cfg, registry)
	if err != nil {
		return err
	}
	app.Router = router

	names, err := app.newNameResolver(cfg, logger)
	if err != nil {
		return err
	}

	calendar := clock.NewGameCalendar(clock.RealClock{}, cfg.Location())
	if err := app.initializeModules(ctx, names, calendar); err != nil {
		return err
	}

	deadletter.NewHandler(bus, logger).Register(router, bus)

	app.HTTPServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           newHTTPHandler(db, registry),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	return nil
}

func (app *App) newNameResolver(cfg *config.Config, logger *slog.Logger) (*displayname.Resolver, error) {
	var cache displayname.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := displayname.NewRedisCache(displayname.CacheConfig{URL: cfg.Redis.URL, TTL: cfg.Redis.TTL})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize display name cache: %w", err)
		}
		app.nameCache = redisCache
		cache = redisCache
	} else {
		logger.Warn("REDIS_URL not set; display names are not cached")
	}
	return displayname.NewResolver(cache, app.EventBus.Conn(), logger, 2*time.Second), nil
}

func (app *App) initializeModules(ctx context.Context, names *displayname.Resolver, calendar *clock.GameCalendar) error {
	obs := app.Observability
	cfg := app.Config

	scoreModule, err := score.NewScoreModule(ctx, obs, app.EventBus, app.Router, app.DB, calendar, names, cfg.Game.WebAppURL)
	if err != nil {
		return fmt.Errorf("failed to initialize score module: %w", err)
	}
	app.Modules.Score = scoreModule

	tournamentModule, err := tournament.NewTournamentModule(ctx, obs, app.EventBus, app.Router, app.DB, calendar, names, cfg.Runtime.DialogTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize tournament module: %w", err)
	}
	app.Modules.Tournament = tournamentModule

	leaderboardModule, err := leaderboard.NewLeaderboardModule(
		ctx,
		obs,
		app.EventBus,
		app.Router,
		calendar,
		tournamentModule.TournamentService,
		scoreModule.Repository,
		names,
		cfg.Runtime.LeaderboardConcurrency,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	app.Modules.Leaderboard = leaderboardModule
	return nil
}

// Run starts the modules, the HTTP server and the message router, and blocks until ctx is
// cancelled or the router stops.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	app.wg.Add(3)
	go app.Modules.Score.Run(ctx, &app.wg)
	go app.Modules.Tournament.Run(ctx, &app.wg)
	go app.Modules.Leaderboard.Run(ctx, &app.wg)

	go func() {
		logger.Info("Starting HTTP server", attr.String("addr", app.HTTPServer.Addr))
		if err := app.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", attr.Error(err))
		}
	}()

	logger.Info("Starting message router")
	if err := app.Router.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("message router stopped: %w", err)
	}
	return nil
}
