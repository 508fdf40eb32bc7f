package create_reservation

import "errors"

var (
	// ErrAssetNotFound возвращается, когда судно не найдено в каталоге
	ErrAssetNotFound = errors.New("create_reservation: asset not found")

	// ErrAssetInactive возвращается, когда судно выведено из эксплуатации
	ErrAssetInactive = errors.New("create_reservation: asset is not active")

	// ErrAssetUnavailable возвращается, когда судно занято хотя бы на одну дату диапазона
	ErrAssetUnavailable = errors.New("create_reservation: asset is not available for the whole range")

	// ErrRangeTooLong возвращается, когда диапазон превышает max_range_days
	// или часть одного дня запрошена на несколько дат
	ErrRangeTooLong = errors.New("create_reservation: date range too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
