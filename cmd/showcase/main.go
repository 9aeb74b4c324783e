package main

import (
	"context"

	fxmodules "steam-showcase/internal/fx"
	"steam-showcase/internal/history"
	"steam-showcase/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	showcase *service.ShowcaseService,
	recorder *history.Recorder,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := showcase.Run(context.Background()); err != nil {
					logger.Error().Err(err).Msg("showcase generation failed")
					shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := recorder.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing history database")
			}
			return nil
		},
	})
}
