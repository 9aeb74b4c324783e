package fx

import (
	"steam-showcase/internal/api"
	"steam-showcase/internal/config"
	"steam-showcase/internal/history"
	"steam-showcase/internal/logger"
	"steam-showcase/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// api client
	fx.Provide(api.NewSteamClient),
	// snapshot archive
	fx.Provide(history.New),
	// svc
	fx.Provide(service.NewShowcaseService),
)
