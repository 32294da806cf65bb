package workflow

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/twmb/franz-go/pkg/kgo"
)

func newKafkaConsumer(brokers, group, topic string) (*kgo.Client, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topic),
		kgo.DisableAutoCommit(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// kafkaConsumer drains a direct-invocation topic. Direct sends are one-way
// with no retry visible to the sender, so records are committed whether the
// handler succeeded or not.
type kafkaConsumer struct {
	client *kgo.Client
	handle func(ctx context.Context, body []byte) error
	log    zerolog.Logger
}

func (c *kafkaConsumer) Run(ctx context.Context) {
	c.log.Info().Msg("consuming records")

	for {
		select {
		case <-ctx.Done():
			c.client.Close()
			c.log.Info().Msg("consumer closed")
			return
		default:
		}

		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() {
			c.log.Warn().Msg("kafka client closed")
			return
		}
		fetches.EachError(func(t string, p int32, err error) {
			c.log.Err(err).Str("topic", t).Int32("partition", p).Msg("error fetching")
		})

		fetches.EachRecord(func(record *kgo.Record) {
			if err := c.handle(ctx, record.Value); err != nil {
				c.log.Error().Err(err).Msg("failed to handle record")
			}
		})

		if err := c.client.CommitUncommittedOffsets(context.Background()); err != nil {
			c.log.Err(err).Msg("failed to commit offsets")
		}
	}
}
