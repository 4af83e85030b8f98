package components

import (
	"webstore-service/internal/handler"
	"webstore-service/internal/handler/api"
	"webstore-service/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookHandler,
		api.NewCatalogHandler,
		api.NewOrderHandler,
		api.NewFavoriteHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
