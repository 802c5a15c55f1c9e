package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Конкретные ошибки слоёв оборачивают одну из них,
// чтобы транспорт мог выбрать код ответа через errors.Is
var (
	// ErrValidation данные клиента некорректны или нарушают политику записи
	ErrValidation = errors.New("validation error")

	// ErrConflict операция нарушила бы уникальность слота
	ErrConflict = errors.New("conflict")

	// ErrNotFound запрошенная сущность отсутствует
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable хранилище недоступно или не ответило вовремя
	ErrStoreUnavailable = errors.New("store unavailable")
)

var (
	// ErrInvalidSlotWindow некорректная конфигурация окна приёма
	ErrInvalidSlotWindow = errors.New("domain: invalid slot window")

	// ErrInvalidSlotFormat слот не в формате "HH:MM-HH:MM"
	ErrInvalidSlotFormat = fmt.Errorf("%w: invalid slot format", ErrValidation)

	// ErrUnknownStatus неизвестное значение статуса
	ErrUnknownStatus = fmt.Errorf("%w: unknown booking status", ErrValidation)

	// ErrInvalidTransition переход между статусами запрещён
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", ErrValidation)
)
