package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange     = "khp.events"
	KitchenQueue = "kitchen.q"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// DeclareAll sets up the topic exchange and the kitchen queue bound to
// order events. Idempotent, called by both publisher and consumer sides.
func (c *Client) DeclareAll() error {
	if err := c.ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.ch.QueueDeclare(KitchenQueue, true, false, false, false, nil); err != nil {
		return err
	}
	return c.ch.QueueBind(KitchenQueue, "order.*.*", Exchange, false, nil)
}

// Publish sends a persistent JSON event on the topic exchange.
func (c *Client) Publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return c.ch.PublishWithContext(ctx, Exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Consume opens a delivery channel on the named queue.
func (c *Client) Consume(queue, consumer string) (<-chan amqp.Delivery, error) {
	if err := c.ch.Qos(10, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}

// Publisher is the narrow interface services use; it swallows broker errors
// after logging so a down broker never fails a user action.
type Publisher interface {
	Emit(ctx context.Context, key string, payload any)
}

type brokerPublisher struct {
	client *Client
}

func NewPublisher(client *Client) Publisher {
	return &brokerPublisher{client: client}
}

func (p *brokerPublisher) Emit(ctx context.Context, key string, payload any) {
	if p.client == nil {
		return
	}
	if err := p.client.Publish(ctx, key, payload); err != nil {
		log.Printf("⚠️  Event publish failed key=%s: %v", key, err)
	}
}

// NopPublisher drops every event. Used when RABBITMQ_URL is not configured
// and in tests.
type NopPublisher struct{}

func (NopPublisher) Emit(ctx context.Context, key string, payload any) {}
