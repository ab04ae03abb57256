package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"paylock/pkg/config"
	"paylock/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	LedgerExchange   = "ledger_events"
	UnlockQueueName  = "unlock_events"
	UnlockRoutingKey = "unlock"

	maxPriority = 10
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		LedgerExchange, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		UnlockQueueName, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		amqp.Table{
			"x-max-priority": maxPriority,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		UnlockQueueName,  // queue name
		UnlockRoutingKey, // routing key
		LedgerExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEvent marshals event as JSON and publishes it to the ledger exchange.
// amqp channels are not safe for concurrent publishing, so calls are serialised.
func (c *Client) PublishEvent(routingKey string, priority uint8, event interface{}) error {
	if priority > maxPriority {
		priority = maxPriority
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mu.Lock()
	err = c.channel.Publish(
		LedgerExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     priority,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish message to exchange=%s, routing_key=%s: %v", LedgerExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published event to exchange=%s, routing_key=%s: %s", LedgerExchange, routingKey, string(body))
	return nil
}

// ConsumeUnlockEvents delivers unlock events to handler on a dedicated channel.
// Bodies the handler rejects with a permanent error are dropped, others are requeued.
func (c *Client) ConsumeUnlockEvents(consumer string, handler func(body []byte) error, permanent func(error) bool) error {
	c.mu.Lock()
	channel, err := c.conn.Channel()
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}

	msgs, err := channel.Consume(
		UnlockQueueName, // queue
		consumer,        // consumer
		false,           // auto-ack (we ack after processing)
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		channel.Close()
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", UnlockQueueName)

	go func() {
		defer channel.Close()
		for msg := range msgs {
			if err := handler(msg.Body); err != nil {
				requeue := permanent == nil || !permanent(err)
				c.logger.Error("[RABBITMQ] Handler failed for message on %s (requeue=%t): %v", UnlockQueueName, requeue, err)
				msg.Nack(false, requeue)
				continue
			}
			msg.Ack(false)
		}
		c.logger.Info("[RABBITMQ] Consumer for %s stopped", UnlockQueueName)
	}()

	return nil
}

// QueueLength returns the number of undelivered unlock events.
func (c *Client) QueueLength() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue, err := c.channel.QueueInspect(UnlockQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
