package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrAssetNotFound возвращается, когда судно не найдено в каталоге
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRangeTooLong возвращается, когда окно превышает допустимую длину
	ErrRangeTooLong = errors.New("date range too long")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
