package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTM-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

// fakeBroker in-memory брокер: считает подключения и собирает опубликованные сообщения
type fakeBroker struct {
	dials      int
	channels   int
	down       bool
	declared   []string
	messages   []published
	lastConn   *fakeConn
	lastCh     *fakeChannel
	publishErr error // ошибка следующей публикации
}

func (b *fakeBroker) dial(string) (connection, error) {
	if b.down {
		return nil, errors.New("connection refused")
	}
	b.dials++
	b.lastConn = &fakeConn{broker: b}
	return b.lastConn, nil
}

type fakeConn struct {
	broker *fakeBroker
	closed bool
}

func (c *fakeConn) Channel() (channel, error) {
	if c.closed {
		return nil, amqp.ErrClosed
	}
	c.broker.channels++
	c.broker.lastCh = &fakeChannel{broker: c.broker}
	return c.broker.lastCh, nil
}

func (c *fakeConn) IsClosed() bool { return c.closed }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeChannel struct {
	broker *fakeBroker
	closed bool
}

func (ch *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	if !durable {
		return errors.New("exchange must be durable")
	}
	ch.broker.declared = append(ch.broker.declared, name+":"+kind)
	return nil
}

func (ch *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if err := ch.broker.publishErr; err != nil {
		ch.broker.publishErr = nil
		if errors.Is(err, amqp.ErrClosed) {
			ch.closed = true
		}
		return err
	}
	if ch.closed {
		return amqp.ErrClosed
	}
	ch.broker.messages = append(ch.broker.messages, published{exchange, key, msg})
	return nil
}

func (ch *fakeChannel) IsClosed() bool { return ch.closed }

func (ch *fakeChannel) Close() error {
	ch.closed = true
	return nil
}

func testEvent(id int64) Event {
	slot, _ := domain.ParseSlot("11:30-11:50")
	b := &domain.Booking{
		ID:        id,
		TeacherID: "ivanova",
		Date:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Slot:      slot,
		Status:    domain.StatusNew,
	}
	return NewEvent(BookingCreated, b, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
}

func newTestPublisher(t *testing.T, broker *fakeBroker) *Publisher {
	t.Helper()
	p, err := newPublisher("amqp://test", "ptm.bookings", broker.dial, nopLogger{})
	require.NoError(t, err)
	return p
}

func TestPublisher_Publish(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	require.NoError(t, p.Publish(context.Background(), testEvent(7)))

	assert.Equal(t, []string{"ptm.bookings:topic"}, broker.declared)
	require.Len(t, broker.messages, 1)

	got := broker.messages[0]
	assert.Equal(t, "ptm.bookings", got.exchange)
	assert.Equal(t, string(BookingCreated), got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var decoded Event
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, int64(7), decoded.Booking.ID)
}

func TestPublisher_ReconnectsAfterChannelClosed(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	// брокер закрыл канал, соединение живо
	broker.lastCh.closed = true

	require.NoError(t, p.Publish(context.Background(), testEvent(1)))
	assert.Equal(t, 1, broker.dials)
	assert.Equal(t, 2, broker.channels)
	assert.Len(t, broker.messages, 1)
}

func TestPublisher_ReconnectsAfterConnectionClosed(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	broker.lastConn.closed = true
	broker.lastCh.closed = true

	require.NoError(t, p.Publish(context.Background(), testEvent(1)))
	assert.Equal(t, 2, broker.dials)
	assert.Len(t, broker.messages, 1)
}

func TestPublisher_RetriesOnceWhenChannelClosesDuringPublish(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	broker.publishErr = amqp.ErrClosed

	require.NoError(t, p.Publish(context.Background(), testEvent(1)))
	assert.Equal(t, 2, broker.channels)
	assert.Len(t, broker.messages, 1)
}

func TestPublisher_BrokerDownThenBack(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	broker.lastConn.closed = true
	broker.lastCh.closed = true
	broker.down = true

	err := p.Publish(context.Background(), testEvent(1))
	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, ErrConnect)
	assert.Empty(t, broker.messages)

	broker.down = false
	require.NoError(t, p.Publish(context.Background(), testEvent(2)))
	require.Len(t, broker.messages, 1)
}

func TestPublisher_PublishErrorIsNotRetried(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	broker.publishErr = errors.New("nack")

	err := p.Publish(context.Background(), testEvent(1))
	assert.ErrorIs(t, err, ErrPublish)
	assert.Equal(t, 1, broker.channels)
	assert.Empty(t, broker.messages)
}

func TestPublisher_Close(t *testing.T) {
	broker := &fakeBroker{}
	p := newTestPublisher(t, broker)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, broker.lastConn.closed)
	assert.True(t, broker.lastCh.closed)

	assert.ErrorIs(t, p.Publish(context.Background(), testEvent(1)), ErrClosed)
	assert.Equal(t, 1, broker.dials)
}

func TestNewPublisher_DialFailure(t *testing.T) {
	broker := &fakeBroker{down: true}

	_, err := newPublisher("amqp://test", "ptm.bookings", broker.dial, nopLogger{})
	assert.ErrorIs(t, err, ErrConnect)
}
