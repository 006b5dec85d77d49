package client

import (
	"context"
	"sync"
	"time"

	"github.com/krakosik/happenings/internal/dto"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const submissionsExchange = "submissions"

type RabbitClient interface {
	PublishMessage(ctx context.Context, message []byte) error
	Close() error
}

type rabbitClient struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	exchangeName string
	mutex        sync.RWMutex
	closed       chan struct{}
}

type noopRabbitClient struct{}

// NewRabbitMQClient dials the broker and declares the submissions fanout exchange.
func NewRabbitMQClient(config dto.Config) (RabbitClient, error) {
	conn, ch, err := dialExchange(config.RabbitMQURL, submissionsExchange)
	if err != nil {
		return nil, err
	}

	client := &rabbitClient{
		conn:         conn,
		channel:      ch,
		exchangeName: submissionsExchange,
		closed:       make(chan struct{}),
	}

	go client.monitorConnection(config.RabbitMQURL)

	return client, nil
}

// NewNoopRabbitClient drops every message. It stands in when no broker is configured.
func NewNoopRabbitClient() RabbitClient {
	return noopRabbitClient{}
}

func dialExchange(connectionStr, exchangeName string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(connectionStr)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	err = ch.ExchangeDeclare(
		exchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}

func (c *rabbitClient) monitorConnection(connectionStr string) {
	c.mutex.RLock()
	connCloseChan := c.conn.NotifyClose(make(chan *amqp.Error, 1))
	c.mutex.RUnlock()

	select {
	case err := <-connCloseChan:
		logrus.Errorf("RabbitMQ connection closed: %v", err)
	case <-c.closed:
		return
	}

	for {
		select {
		case <-time.After(5 * time.Second):
		case <-c.closed:
			return
		}

		logrus.Info("Attempting to reconnect to RabbitMQ...")
		conn, ch, err := dialExchange(connectionStr, c.exchangeName)
		if err != nil {
			logrus.Errorf("Failed to reconnect to RabbitMQ: %v", err)
			continue
		}

		c.mutex.Lock()
		oldConn := c.conn
		oldChannel := c.channel
		c.conn = conn
		c.channel = ch
		c.mutex.Unlock()

		if oldChannel != nil {
			oldChannel.Close()
		}
		if oldConn != nil {
			oldConn.Close()
		}

		go c.monitorConnection(connectionStr)
		return
	}
}

func (c *rabbitClient) PublishMessage(ctx context.Context, message []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		"",             // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now().UTC(),
			Body:        message,
		})
}

func (c *rabbitClient) Close() error {
	close(c.closed)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (noopRabbitClient) PublishMessage(context.Context, []byte) error {
	return nil
}

func (noopRabbitClient) Close() error {
	return nil
}
