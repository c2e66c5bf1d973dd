package data

import (
	"context"
	"fmt"
	"time"

	"tumble/internal/conf"

	"github.com/streadway/amqp"
	"github.com/yola1107/kratos/v2/log"
)

const defaultExchange = "tumble.events"

// Broker publishes to a topic exchange. It is used from a single goroutine.
type Broker struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewRabbitMQ dials the broker and declares the exchange. It returns nil
// when no url is configured.
func NewRabbitMQ(c *conf.Data, logger log.Logger) (*Broker, func(), error) {
	if c == nil || c.Rabbitmq == nil || c.Rabbitmq.Url == "" {
		log.NewHelper(logger).Info("rabbitmq disabled")
		return nil, func() {}, nil
	}
	exchange := c.Rabbitmq.Exchange
	if exchange == "" {
		exchange = defaultExchange
	}
	conn, err := amqp.Dial(c.Rabbitmq.Url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	b := &Broker{conn: conn, ch: ch, exchange: exchange}
	return b, func() {
		_ = ch.Close()
		_ = conn.Close()
	}, nil
}

// Publish sends body with the topic as routing key.
func (b *Broker) Publish(_ context.Context, key string, body []byte) error {
	return b.ch.Publish(
		b.exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Transient,
			Timestamp:    time.Now(),
		},
	)
}

func (b *Broker) String() string { return "amqp:" + b.exchange }
