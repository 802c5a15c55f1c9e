package events

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events publisher: failed to connect to broker")

	// ErrEncode возвращается, когда событие не удалось сериализовать
	ErrEncode = errors.New("events publisher: failed to encode event")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("events publisher: failed to publish event")

	// ErrClosed возвращается при публикации через закрытый publisher
	ErrClosed = errors.New("events publisher: publisher is closed")
)
