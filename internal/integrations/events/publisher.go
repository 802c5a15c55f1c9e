package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// channel часть *amqp.Channel, которой пользуется Publisher
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// connection часть *amqp.Connection, которой пользуется Publisher
type connection interface {
	Channel() (channel, error)
	IsClosed() bool
	Close() error
}

type dialFunc func(url string) (connection, error)

type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (channel, error) {
	return c.Connection.Channel()
}

func dialAMQP(url string) (connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return amqpConnection{conn}, nil
}

// Publisher публикует события в topic exchange RabbitMQ
// Закрытый брокером канал или соединение переоткрываются при следующей публикации
type Publisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	dial     dialFunc
	conn     connection
	ch       channel
	closed   bool
	log      Logger
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	return newPublisher(url, exchange, dialAMQP, log)
}

func newPublisher(url, exchange string, dial dialFunc, log Logger) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange, dial: dial, log: log}
	if err := p.connect(); err != nil {
		return nil, err
	}

	log.Info("Events publisher connected, exchange=%s", exchange)
	return p, nil
}

// connect открывает канал (и при необходимости соединение) и объявляет exchange
// Вызывается под p.mu или из конструктора
func (p *Publisher) connect() error {
	if p.conn == nil || p.conn.IsClosed() {
		if p.conn != nil {
			_ = p.conn.Close()
		}
		p.conn = nil

		conn, err := p.dial(p.url)
		if err != nil {
			return fmt.Errorf("%w: dial: %v", ErrConnect, err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		_ = p.conn.Close()
		p.conn = nil
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, p.exchange, err)
	}

	p.ch = ch
	return nil
}

// ensureChannel переподключается, если канал закрыт. Вызывается под p.mu
func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}

	if err := p.connect(); err != nil {
		return err
	}
	p.log.Info("Events publisher reconnected, exchange=%s", p.exchange)
	return nil
}

// Publish отправляет событие с routing key = тип события
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	if err := p.ensureChannel(); err != nil {
		return fmt.Errorf("%w: %s booking=%d: %w", ErrPublish, event.Type, event.Booking.ID, err)
	}

	err = p.publish(ctx, event, body)
	if errors.Is(err, amqp.ErrClosed) {
		// канал закрылся между проверкой и отправкой: одна повторная попытка
		p.log.Warn("Events publisher: channel closed while publishing %s, reconnecting", event.Type)
		p.ch = nil
		if rerr := p.ensureChannel(); rerr != nil {
			return fmt.Errorf("%w: %s booking=%d: %w", ErrPublish, event.Type, event.Booking.ID, rerr)
		}
		err = p.publish(ctx, event, body)
	}
	if err != nil {
		return fmt.Errorf("%w: %s booking=%d: %v", ErrPublish, event.Type, event.Booking.ID, err)
	}

	return nil
}

func (p *Publisher) publish(ctx context.Context, event Event, body []byte) error {
	return p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         string(event.Type),
		Body:         body,
	})
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда публикация событий выключена
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
