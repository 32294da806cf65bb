package workflow

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"

	"github.com/carpetaciudadana/co/internal/config"
	"github.com/carpetaciudadana/co/internal/transport"
	"github.com/carpetaciudadana/co/pkg/audit"
)

// Stage entrypoints. Each builds its clients from the config, wires the stage
// handler, and consumes its inbound transport until the context is cancelled.

func RunValidator(ctx context.Context, cfg *config.Config) error {
	if cfg.OpenRequestQueueURL == "" {
		return fmt.Errorf("open request queue is not configured")
	}

	appender, err := audit.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialise audit store: %w", err)
	}
	defer appender.Close()

	dispatcher, err := newDispatcher(ctx, cfg)
	if err != nil {
		return err
	}

	sqsClient, err := transport.NewSQSClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialise sqs client: %w", err)
	}

	s3Client, err := transport.NewS3Client(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialise s3 client: %w", err)
	}

	validator := NewValidator(cfg, appender, dispatcher, transport.NewBreadcrumb(s3Client, cfg.ObjectBucket))

	consumer := &sqsConsumer{
		client:   sqsClient,
		queueURL: cfg.OpenRequestQueueURL,
		handle:   validator.Handle,
		log:      zlog.With().Str("stage", "validate").Logger(),
	}
	consumer.Run(ctx)
	return nil
}

func RunRegistraduria(ctx context.Context, cfg *config.Config) error {
	if cfg.KafkaBrokers == "" {
		return fmt.Errorf("kafka brokers are not configured")
	}

	appender, err := audit.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialise audit store: %w", err)
	}
	defer appender.Close()

	dispatcher, err := newDispatcher(ctx, cfg)
	if err != nil {
		return err
	}

	client, err := newKafkaConsumer(cfg.KafkaBrokers, "carpeta-registraduria", cfg.VerifyRequestTopic)
	if err != nil {
		return fmt.Errorf("failed to initialise kafka client: %w", err)
	}

	stage := NewRegistraduria(cfg, appender, dispatcher, nil)

	consumer := &kafkaConsumer{
		client: client,
		handle: stage.Handle,
		log:    zlog.With().Str("stage", "registraduria").Logger(),
	}
	consumer.Run(ctx)
	return nil
}

func RunNotifier(ctx context.Context, cfg *config.Config) error {
	if cfg.IdentityResponseQueueURL == "" {
		return fmt.Errorf("identity response queue is not configured")
	}

	appender, err := audit.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialise audit store: %w", err)
	}
	defer appender.Close()

	dispatcher, err := newDispatcher(ctx, cfg)
	if err != nil {
		return err
	}

	sqsClient, err := transport.NewSQSClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialise sqs client: %w", err)
	}

	notifier := NewNotifier(cfg, appender, dispatcher)

	consumer := &sqsConsumer{
		client:   sqsClient,
		queueURL: cfg.IdentityResponseQueueURL,
		handle:   notifier.Handle,
		log:      zlog.With().Str("stage", "notify").Logger(),
	}
	consumer.Run(ctx)
	return nil
}

func RunMinTIC(ctx context.Context, cfg *config.Config) error {
	if cfg.KafkaBrokers == "" {
		return fmt.Errorf("kafka brokers are not configured")
	}

	appender, err := audit.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialise audit store: %w", err)
	}
	defer appender.Close()

	dispatcher, err := newDispatcher(ctx, cfg)
	if err != nil {
		return err
	}

	client, err := newKafkaConsumer(cfg.KafkaBrokers, "carpeta-mintic", cfg.RegistryNoticeTopic)
	if err != nil {
		return fmt.Errorf("failed to initialise kafka client: %w", err)
	}

	stage := NewMinTIC(cfg, appender, dispatcher)

	consumer := &kafkaConsumer{
		client: client,
		handle: stage.Handle,
		log:    zlog.With().Str("stage", "mintic").Logger(),
	}
	consumer.Run(ctx)
	return nil
}

func RunEmail(ctx context.Context, cfg *config.Config) error {
	appender, err := audit.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialise audit store: %w", err)
	}
	defer appender.Close()

	channel, err := transport.NewRabbitChannel(cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("failed to initialise rabbit channel: %w", err)
	}
	if channel == nil {
		return fmt.Errorf("rabbit url is not configured")
	}

	if err := transport.DeclareFolderCreatedExchange(channel, cfg.FolderCreatedExchange); err != nil {
		return fmt.Errorf("failed to declare %s: %w", cfg.FolderCreatedExchange, err)
	}
	q, err := transport.DeclareEmailQueue(channel, cfg.FolderCreatedExchange)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", transport.QueueEmail, err)
	}

	stage := NewEmail(cfg, appender)

	consumer := &rabbitConsumer{
		channel: channel,
		queue:   q.Name,
		handle:  stage.Handle,
		log:     zlog.With().Str("stage", "email").Logger(),
	}
	return consumer.Run(ctx)
}

// newDispatcher wires every configured outbound transport. Unconfigured legs
// stay nil and the dispatcher skips them.
func newDispatcher(ctx context.Context, cfg *config.Config) (*transport.Dispatcher, error) {
	sqsClient, err := transport.NewSQSClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise sqs client: %w", err)
	}

	channel, err := transport.NewRabbitChannel(cfg.RabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise rabbit channel: %w", err)
	}
	if channel != nil {
		if err := transport.DeclareFolderCreatedExchange(channel, cfg.FolderCreatedExchange); err != nil {
			return nil, fmt.Errorf("failed to declare %s: %w", cfg.FolderCreatedExchange, err)
		}
	}

	kafka, err := transport.NewKafkaClient(cfg.KafkaBrokers)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise kafka client: %w", err)
	}

	return transport.NewDispatcher(sqsClient, channel, kafka), nil
}
