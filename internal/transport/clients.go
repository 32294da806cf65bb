package transport

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/twmb/franz-go/pkg/kgo"
)

func NewSQSClient(ctx context.Context) (*sqs.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return sqs.NewFromConfig(cfg), nil
}

func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

// NewRabbitChannel dials the broker and opens a channel. An empty URL yields a
// nil channel, leaving topic legs unconfigured.
func NewRabbitChannel(url string) (*amqp.Channel, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	return conn.Channel()
}

// NewKafkaClient builds a producing client. An empty broker list yields a nil
// client, leaving direct legs unconfigured.
func NewKafkaClient(brokers string, opts ...kgo.Opt) (*kgo.Client, error) {
	if brokers == "" {
		return nil, nil
	}

	opts = append([]kgo.Opt{kgo.SeedBrokers(brokers)}, opts...)

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return client, nil
}
