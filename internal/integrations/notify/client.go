package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher интерфейс публикации событий бронирования
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
}

// Client публикует события бронирования в очередь RabbitMQ.
// Доставка уведомлений не влияет на результат операции бронирования,
// ошибки публикации только логируются на стороне вызывающего кода.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	timeout time.Duration
	logger  Logger
}

// NewClient подключается к брокеру и объявляет очередь событий
func NewClient(url, queue string, timeout time.Duration, logger Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnect, url, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare queue %s: %v", ErrConnect, queue, err)
	}

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   queue,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// PublishBookingEvent публикует событие бронирования в очередь.
// EventID и OccurredAt заполняются автоматически, если не заданы.
func (c *Client) PublishBookingEvent(ctx context.Context, event *BookingEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		pubCtx,
		"", // default exchange
		c.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: publish %s: %v", ErrPublish, event.Type, err)
	}

	c.logger.Info("notify: published %s event_id=%s booking=%d", event.Type, event.EventID, event.BookingID)
	return nil
}

// Close закрывает канал и соединение с брокером
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// NopPublisher заглушка публикации событий для выключенных уведомлений и тестов
type NopPublisher struct{}

// PublishBookingEvent ничего не делает
func (NopPublisher) PublishBookingEvent(_ context.Context, _ *BookingEvent) error {
	return nil
}
