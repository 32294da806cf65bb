// Package config collects every knob the workflow stages read. The struct is
// built once at process entry and passed by reference into constructors;
// components never read ambient environment state themselves.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults preserved from the reference deployment. The email address parts
// and the verdict weights are policy knobs, overridable through the
// environment rather than baked in.
const (
	DefaultEmailDomain        = "carpetacolombia.co"
	DefaultEmailPrefix        = "ciudadano"
	DefaultVerifiedWeight     = 2
	DefaultInconclusiveWeight = 1
	DefaultVerifyDelay        = 300 * time.Millisecond
	DefaultRegistryDelay      = 100 * time.Millisecond

	DefaultVerifyRequestTopic    = "carpeta-verify-requests"
	DefaultRegistryNoticeTopic   = "carpeta-registry-notices"
	DefaultFolderCreatedExchange = "carpeta.folder-created"
)

type Config struct {
	// Audit trail store. Empty means audit appends are no-ops.
	DatabaseURL string

	// Bucket for best-effort breadcrumb notes. Empty disables them.
	ObjectBucket string

	// SQS queues.
	OpenRequestQueueURL      string
	IdentityResponseQueueURL string
	RegistryResponseQueueURL string

	// Kafka topics carrying the one-way direct invocations.
	KafkaBrokers        string
	VerifyRequestTopic  string
	RegistryNoticeTopic string

	// RabbitMQ fan-out of folder-created notifications.
	RabbitURL             string
	FolderCreatedExchange string

	// Email assignment policy.
	EmailPrefix string
	EmailDomain string

	// Identity verification mock policy.
	VerifiedWeight     int
	InconclusiveWeight int
	VerifyDelay        time.Duration
	RegistryDelay      time.Duration
}

// FromEnv reads the full configuration from the environment in one place.
func FromEnv() *Config {
	return &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ObjectBucket: os.Getenv("OBJECT_BUCKET"),

		OpenRequestQueueURL:      os.Getenv("OPEN_REQUEST_QUEUE_URL"),
		IdentityResponseQueueURL: os.Getenv("IDENTITY_RESPONSE_QUEUE_URL"),
		RegistryResponseQueueURL: os.Getenv("REGISTRY_RESPONSE_QUEUE_URL"),

		KafkaBrokers:        os.Getenv("KAFKA_BROKERS"),
		VerifyRequestTopic:  envOr("VERIFY_REQUEST_TOPIC", DefaultVerifyRequestTopic),
		RegistryNoticeTopic: envOr("REGISTRY_NOTICE_TOPIC", DefaultRegistryNoticeTopic),

		RabbitURL:             os.Getenv("RABBIT_URL"),
		FolderCreatedExchange: envOr("FOLDER_CREATED_EXCHANGE", DefaultFolderCreatedExchange),

		EmailPrefix: envOr("EMAIL_PREFIX", DefaultEmailPrefix),
		EmailDomain: envOr("EMAIL_DOMAIN", DefaultEmailDomain),

		VerifiedWeight:     envInt("VERIFIED_WEIGHT", DefaultVerifiedWeight),
		InconclusiveWeight: envInt("INCONCLUSIVE_WEIGHT", DefaultInconclusiveWeight),
		VerifyDelay:        envDuration("VERIFY_DELAY", DefaultVerifyDelay),
		RegistryDelay:      envDuration("REGISTRY_DELAY", DefaultRegistryDelay),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
