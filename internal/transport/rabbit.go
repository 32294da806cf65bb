package transport

import amqp "github.com/rabbitmq/amqp091-go"

// QueueEmail feeds the email assignment stage from the folder-created
// exchange.
const QueueEmail = "carpeta.email.queue"

const exchangeFolderCreatedType = "fanout"

func DeclareFolderCreatedExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,                      // name
		exchangeFolderCreatedType, // type
		true,                      // durable
		false,                     // auto-deleted
		false,                     // internal
		false,                     // no-wait
		nil,                       // arguments
	)
}

func DeclareEmailQueue(ch *amqp.Channel, exchange string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		QueueEmail, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return q, err
	}

	return q, ch.QueueBind(q.Name, "", exchange, false, nil)
}
