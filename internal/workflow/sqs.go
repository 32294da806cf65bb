package workflow

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
)

// sqsConsumer polls one queue and runs each message of a batch through a
// stage handler. Messages are independent: a failed handler leaves its
// message on the queue for redelivery and the rest of the batch proceeds.
type sqsConsumer struct {
	client   *sqs.Client
	queueURL string
	handle   func(ctx context.Context, body []byte) error
	log      zerolog.Logger
}

func (c *sqsConsumer) Run(ctx context.Context) {
	c.log.Info().Str("queue", c.queueURL).Msg("consuming messages")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("consumer closed")
			return
		default:
		}

		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.log.Error().Err(err).Msg("failed to receive messages")
			time.Sleep(5 * time.Second)
			continue
		}

		for _, message := range out.Messages {
			if err := c.handle(ctx, []byte(aws.ToString(message.Body))); err != nil {
				// Left on the queue; the visibility timeout redelivers it.
				c.log.Error().Err(err).Msg("failed to handle message")
				continue
			}

			_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
				QueueUrl:      aws.String(c.queueURL),
				ReceiptHandle: message.ReceiptHandle,
			})
			if err != nil {
				c.log.Error().Err(err).Msg("failed to delete message")
			}
		}
	}
}
