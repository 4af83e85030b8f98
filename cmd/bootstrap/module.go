package bootstrap

import (
	"webstore-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	MigrationModule,
	JWTModule,
	MQModule,
	IdentityModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
