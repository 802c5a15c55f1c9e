// Package keylock реализует мьютекс по строковому ключу с поддержкой отмены через context.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Locker набор мьютексов, создаваемых по требованию для каждого ключа
// Запись удаляется, когда ключ никто не держит и не ждёт
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New создаёт Locker
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock захватывает блокировку по ключу
// Возвращает функцию освобождения; повторный вызов функции безопасен
// Если ctx отменён раньше, чем блокировка освободилась, возвращается ctx.Err()
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				l.release(key, e)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}
}

func (l *Locker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size количество ключей, которые сейчас удерживаются или ожидаются
func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
