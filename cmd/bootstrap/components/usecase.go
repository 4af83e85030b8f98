package components

import (
	"webstore-service/internal/pkg/clock"
	"webstore-service/internal/usecase"
	"webstore-service/internal/usecase/commands"
	"webstore-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	usecase.NewUserService,
	usecase.NewAuthUseCase,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderUseCase,
		commands.NewBookUseCase,
		commands.NewFavoriteUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookQueries,
		queries.NewCatalogQueries,
		queries.NewOrderQueries,
		queries.NewFavoriteQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
