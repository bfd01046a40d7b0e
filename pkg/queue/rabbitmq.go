package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/elnathantransportes-ai/troca/pkg/config"
	"github.com/elnathantransportes-ai/troca/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ChangeExchange  = "troca.changes"
	ChangeQueueName = "change_queue"
)

// ChangeEvent is published whenever a listing, proposal or chat message is
// created or mutated, so consumers can invalidate caches and re-notify
// subscribers without polling the database.
type ChangeEvent struct {
	Entity    string    `json:"entity"` // listing | proposal | message | user
	EntityID  string    `json:"entity_id"`
	Action    string    `json:"action"` // created | updated | deleted
	Timestamp time.Time `json:"timestamp"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
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
		ChangeExchange, // name
		"topic",        // type
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

// PublishChange fans a change event out to every bound consumer. Routing key
// is "<entity>.<action>" so consumers can bind to just the entities they care
// about.
func (c *Client) PublishChange(event ChangeEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	err = c.channel.Publish(
		ChangeExchange,
		event.Entity+"."+event.Action,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.Timestamp,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Subscribe binds a fresh queue to the change exchange for the given routing
// patterns (e.g. "listing.*") and delivers decoded events to handler on a
// background goroutine until the client is closed.
func (c *Client) Subscribe(patterns []string, handler func(ChangeEvent)) error {
	q, err := c.channel.QueueDeclare(
		"",    // server-generated name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, pattern := range patterns {
		if err := c.channel.QueueBind(q.Name, pattern, ChangeExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue: %w", err)
		}
	}

	deliveries, err := c.channel.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume: %w", err)
	}

	go func() {
		for d := range deliveries {
			var event ChangeEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				c.logger.Warn("Dropping malformed change event: %v", err)
				continue
			}
			handler(event)
		}
	}()

	return nil
}
