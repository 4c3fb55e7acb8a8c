package app

import (
	"context"
	"errors"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
)

// Close stops every component in reverse start order. It is safe to call on a partially
// initialized App.
func (app *App) Close(ctx context.Context) error {
	logger := app.Observability.Logger
	var errs []error

	if app.HTTPServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		errs = append(errs, app.HTTPServer.Shutdown(shutdownCtx))
		cancel()
	}
	if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}

	if app.Modules.Leaderboard != nil {
		errs = append(errs, app.Modules.Leaderboard.Close())
	}
	if app.Modules.Tournament != nil {
		errs = append(errs, app.Modules.Tournament.Close())
	}
	if app.Modules.Score != nil {
		errs = append(errs, app.Modules.Score.Close())
	}

	waitCh := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(waitCh)
	}()
	select {
	case <-waitCh:
	case <-time.After(5 * time.Second):
		if logger != nil {
			logger.Warn("Timed out waiting for modules to stop")
		}
	}

	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.nameCache != nil {
		errs = append(errs, app.nameCache.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}

	err := errors.Join(errs...)
	if err != nil && logger != nil {
		logger.Error("Shutdown finished with errors", attr.Error(err))
	}
	return err
}
