package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/wordle-bot/app/eventbus"
	"github.com/Black-And-White-Club/wordle-bot/db/bundb"
	"github.com/Black-And-White-Club/wordle-bot/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestStream is the JetStream stream provisioned for integration tests.
const TestStream = "wordle"

// TestEnvironment holds the containers and connections shared by integration tests.
type TestEnvironment struct {
	Ctx           context.Context
	PgContainer   *postgres.PostgresContainer
	NatsContainer *nats.NATSContainer
	DB            *bun.DB
	EventBus      *eventbus.JetStreamEventBus
	NatsURL       string
	Logger        *slog.Logger
}

var (
	sharedEnv     *TestEnvironment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

// GetOrCreateTestEnv returns the process-wide environment, starting it on first use. Tests are
// skipped in -short mode.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	sharedEnvOnce.Do(func() {
		sharedEnv, sharedEnvErr = NewTestEnvironment(context.Background())
	})
	if sharedEnvErr != nil {
		t.Fatalf("failed to set up test environment: %v", sharedEnvErr)
	}
	return sharedEnv
}

// NewTestEnvironment starts Postgres and NATS, applies migrations and connects the event bus.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &TestEnvironment{Ctx: ctx, Logger: logger}

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}
	env.PgContainer = pgContainer

	db, err := bundb.NewBunDB(ctx, dsn)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	env.DB = db

	if err := bundb.RunMigrations(ctx, db, logger); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	env.NatsContainer = natsContainer
	env.NatsURL = natsURL

	bus, err := eventbus.NewJetStreamEventBus(eventbus.Config{
		URL:            natsURL,
		DurablePrefix:  "wordle-bot-test",
		AckWaitTimeout: 5 * time.Second,
	}, logger)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	env.EventBus = bus

	if err := bus.EnsureStreams(ctx, eventbus.DefaultStream(TestStream)); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to provision streams: %w", err)
	}

	return env, nil
}

// ResetDatabase empties every domain table.
func (env *TestEnvironment) ResetDatabase(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(env.Ctx, 10*time.Second)
	defer cancel()
	if _, err := env.DB.ExecContext(ctx, "TRUNCATE TABLE daily_scores, tournaments"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// Cleanup closes connections and terminates containers.
func (env *TestEnvironment) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}
	if env.DB != nil {
		if err := env.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}

// ShutdownSharedEnv tears down the process-wide environment, if one was started.
func ShutdownSharedEnv() {
	if sharedEnv != nil {
		sharedEnv.Cleanup()
	}
}
