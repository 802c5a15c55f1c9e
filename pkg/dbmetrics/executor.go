package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/PTM-BookingService/pkg/txmanager"
)

// Observer получатель длительности запросов (реализуется *metrics.Metrics)
type Observer interface {
	ObserveQuery(operation string, started time.Time, err error)
}

// Executor оборачивает DBExecutor и замеряет каждый запрос
type Executor struct {
	next     txmanager.DBExecutor
	observer Observer
}

// Wrap оборачивает исполнитель. При nil observer возвращает db как есть
func Wrap(db txmanager.DBExecutor, observer Observer) txmanager.DBExecutor {
	if observer == nil {
		return db
	}
	return &Executor{next: db, observer: observer}
}

// GetExecutor возвращает транзакцию из контекста или db.
// Если db обёрнут через Wrap, транзакция оборачивается тем же observer
func GetExecutor(ctx context.Context, db txmanager.DBExecutor) txmanager.DBExecutor {
	if !txmanager.IsInTransaction(ctx) {
		return db
	}

	executor := txmanager.GetExecutor(ctx, db)
	if wrapped, ok := db.(*Executor); ok {
		return &Executor{next: executor, observer: wrapped.observer}
	}
	return executor
}

func (e *Executor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	started := time.Now()
	result, err := e.next.ExecContext(ctx, query, args...)
	e.observer.ObserveQuery(operation(query), started, err)
	return result, err
}

func (e *Executor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	started := time.Now()
	rows, err := e.next.QueryContext(ctx, query, args...)
	e.observer.ObserveQuery(operation(query), started, err)
	return rows, err
}

// QueryRowContext ошибка *sql.Row доступна только после Scan, поэтому замеряется только время
func (e *Executor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	started := time.Now()
	row := e.next.QueryRowContext(ctx, query, args...)
	e.observer.ObserveQuery(operation(query), started, nil)
	return row
}

// operation первое слово запроса (SELECT, INSERT, ...)
func operation(query string) string {
	query = strings.TrimSpace(query)
	if i := strings.IndexAny(query, " \n\t"); i > 0 {
		return strings.ToUpper(query[:i])
	}
	return strings.ToUpper(query)
}
