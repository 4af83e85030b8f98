package mq

import (
	"context"
	"encoding/json"
	"time"

	"webstore-service/internal/pkg/config"
	"webstore-service/internal/pkg/errs"
	"webstore-service/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

const orderConfirmedRoutingKey = "order.confirmed"

// Publisher sends domain events to a durable topic exchange. Messages
// are persistent JSON so consumers survive a broker restart.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(cfg config.AMQPConfig) (*Publisher, func(), error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to message broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open channel")
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange,
		cfg.ExchangeType,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, errs.Wrap(err, "failed to declare exchange")
	}

	p := &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
	}
	cleanup := func() {
		p.Close()
	}
	return p, cleanup, nil
}

func (p *Publisher) publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}

func (p *Publisher) PublishOrderConfirmed(ctx context.Context, event commands.OrderConfirmedEvent) error {
	return p.publish(ctx, orderConfirmedRoutingKey, event)
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
