package workflow

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/carpetaciudadana/co/pkg/envelope"
)

// rabbitConsumer drains a queue bound to the folder-created exchange.
// Unparseable bodies are dropped instead of requeued, anything else goes back
// for redelivery.
type rabbitConsumer struct {
	channel *amqp.Channel
	queue   string
	handle  func(ctx context.Context, body []byte) error
	log     zerolog.Logger
}

func (c *rabbitConsumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		c.queue,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	c.log.Info().Str("queue", c.queue).Msg("consuming deliveries")

	go func() {
		for delivery := range deliveries {
			if err := c.handle(ctx, delivery.Body); err != nil {
				requeue := !errors.Is(err, envelope.ErrMalformed)
				c.log.Error().Err(err).Bool("requeue", requeue).Msg("failed to handle delivery")
				delivery.Nack(false, requeue)
				continue
			}
			delivery.Ack(false)
		}
	}()

	<-ctx.Done()
	c.log.Warn().Msg("shutting down")
	return c.channel.Close()
}
