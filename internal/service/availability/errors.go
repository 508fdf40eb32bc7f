package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных, до обращения к хранилищам
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrStoreUnavailable возвращается при ошибке чтения слотов, бронирований или каталога.
	// Вызывающий код обязан трактовать её как "ничего не доступно"
	ErrStoreUnavailable = errors.New("availability: store unavailable")

	// ErrRangeTooLong возвращается, когда диапазон превышает допустимую длину
	ErrRangeTooLong = errors.New("availability: range too long")
)
