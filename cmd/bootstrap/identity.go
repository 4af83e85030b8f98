package bootstrap

import (
	"webstore-service/internal/infra/identity"
	"webstore-service/internal/pkg/config"
	"webstore-service/internal/usecase"

	"go.uber.org/fx"
)

var IdentityModule = fx.Module("identity",
	fx.Provide(
		fx.Annotate(
			NewIdentityClient,
			fx.As(new(usecase.IdentityClient)),
		),
	),
)

func NewIdentityClient(cfg config.Config) *identity.Client {
	return identity.NewClient(cfg.AuthService)
}
