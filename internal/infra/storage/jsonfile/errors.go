package jsonfile

import (
	"errors"

	"github.com/m04kA/PTM-BookingService/internal/infra/storage/booking"
)

// Хранилище реализует тот же контракт, что и PostgreSQL репозиторий, поэтому
// ошибки контракта общие
var (
	ErrBookingNotFound = booking.ErrBookingNotFound
	ErrSlotTaken       = booking.ErrSlotTaken
	ErrStatusMismatch  = booking.ErrStatusMismatch
)

var (
	// ErrReadFile возвращается, когда файл данных не удалось прочитать
	ErrReadFile = errors.New("jsonfile.store: failed to read data file")

	// ErrDecode возвращается, когда файл данных повреждён
	ErrDecode = errors.New("jsonfile.store: failed to decode data file")

	// ErrPersist возвращается, когда изменения не удалось записать на диск
	ErrPersist = errors.New("jsonfile.store: failed to persist data file")

	// ErrInvalidRecord возвращается, когда запись в файле не проходит разбор
	ErrInvalidRecord = errors.New("jsonfile.store: invalid record")
)
