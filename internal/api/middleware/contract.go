package middleware

import (
	"context"
	"time"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Authenticator проверка учётных данных администратора
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// HTTPMetrics сбор метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, started time.Time)
}
