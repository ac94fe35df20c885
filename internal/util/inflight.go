package util

import (
	"docs-portal/internal/apperrors"
	"sync"
)

// InFlight : не более одного одновременного запроса на ключ (действие + сессия).
// Аналог кнопки, которая заблокирована, пока запрос выполняется
type InFlight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{active: make(map[string]struct{})}
}

// Acquire : возвращает функцию освобождения или ErrInProgress, если ключ уже занят.
// Освобождать нужно через defer, независимо от результата запроса
func (f *InFlight) Acquire(key string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.active[key]; busy {
		return nil, apperrors.ErrInProgress
	}
	f.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.active, key)
			f.mu.Unlock()
		})
	}, nil
}
