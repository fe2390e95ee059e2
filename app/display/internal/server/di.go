package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/idea_radar/app/display/internal/service"
	"github.com/iWorld-y/idea_radar/app/display/internal/usecase"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/engine"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Engine providers
	RadarConfig,
	NewRadarEngine,
	wire.Bind(new(usecase.Generator), new(*engine.Engine)),

	// UseCase providers
	usecase.NewIdeaUseCase,

	// Service providers
	service.NewIdeaService,
)
