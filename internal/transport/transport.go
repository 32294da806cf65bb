// Package transport moves envelopes between workflow stages. Targets come in
// three kinds: queues (SQS, at-least-once, no reply), topics (RabbitMQ
// fan-out, no reply) and direct invocations (one-way Kafka produce, no reply,
// no retry). All sends are fire-and-forget; a failure is fatal for the current
// message only and surfaces to the transport's own redelivery.
package transport

// Target kinds.
const (
	KindQueue  = "queue"
	KindTopic  = "topic"
	KindDirect = "direct"
)

// Target identifies a downstream collaborator. Name is the queue URL, the
// exchange name or the topic, depending on Kind; an empty Name means the
// target is not configured and dispatches to it are silently skipped.
type Target struct {
	Kind string
	Name string
}

func Queue(url string) Target {
	return Target{Kind: KindQueue, Name: url}
}

func Topic(exchange string) Target {
	return Target{Kind: KindTopic, Name: exchange}
}

func Direct(topic string) Target {
	return Target{Kind: KindDirect, Name: topic}
}
