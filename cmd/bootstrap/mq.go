package bootstrap

import (
	"context"

	"webstore-service/internal/infra/mq"
	"webstore-service/internal/pkg/config"
	"webstore-service/internal/usecase/commands"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		fx.Annotate(
			NewPublisher,
			fx.As(new(commands.OrderEventPublisher)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*mq.Publisher, error) {
	publisher, cleanup, err := mq.NewPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return publisher, nil
}
