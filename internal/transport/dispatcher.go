package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/carpetaciudadana/co/pkg/envelope"
)

const appID = "co.carpeta.workflow"

// Dispatcher sends envelopes onward. A nil client for a target's kind, like an
// empty target name, means that leg is not configured and the dispatch is a
// silent no-op.
type Dispatcher struct {
	sqs    *sqs.Client
	rabbit *amqp.Channel
	kafka  *kgo.Client
	log    zerolog.Logger
}

func NewDispatcher(sqsClient *sqs.Client, rabbit *amqp.Channel, kafka *kgo.Client) *Dispatcher {
	return &Dispatcher{
		sqs:    sqsClient,
		rabbit: rabbit,
		kafka:  kafka,
		log:    zlog.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch serializes the envelope per its content type and sends it to the
// target. There is no retry; the caller decides whether the message as a whole
// is redelivered.
func (d *Dispatcher) Dispatch(ctx context.Context, target Target, env *envelope.Envelope) error {
	if target.Name == "" {
		d.log.Debug().Str("kind", target.Kind).Msg("target not configured, skipping dispatch")
		return nil
	}

	body, err := env.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	switch target.Kind {
	case KindQueue:
		if d.sqs == nil {
			d.log.Debug().Str("target", target.Name).Msg("queue transport not configured, skipping dispatch")
			return nil
		}
		_, err := d.sqs.SendMessage(ctx, &sqs.SendMessageInput{
			QueueUrl:    aws.String(target.Name),
			MessageBody: aws.String(string(body)),
		})
		if err != nil {
			return fmt.Errorf("failed to send to queue %s: %w", target.Name, err)
		}
	case KindTopic:
		if d.rabbit == nil {
			d.log.Debug().Str("target", target.Name).Msg("topic transport not configured, skipping dispatch")
			return nil
		}
		err := d.rabbit.PublishWithContext(ctx,
			target.Name, // exchange
			"",          // routing key
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType: envelope.ContentJSON,
				Timestamp:   time.Now(),
				AppId:       appID,
				Body:        body,
			})
		if err != nil {
			return fmt.Errorf("failed to publish to exchange %s: %w", target.Name, err)
		}
	case KindDirect:
		if d.kafka == nil {
			d.log.Debug().Str("target", target.Name).Msg("direct transport not configured, skipping dispatch")
			return nil
		}
		record := &kgo.Record{Topic: target.Name, Key: []byte(env.TransactionID), Value: body}
		if err := d.kafka.ProduceSync(ctx, record).FirstErr(); err != nil {
			return fmt.Errorf("failed to produce to %s: %w", target.Name, err)
		}
	default:
		return fmt.Errorf("unknown target kind %q", target.Kind)
	}

	return nil
}
