package catalogservice

import "errors"

var (
	// ErrAssetNotFound возвращается, когда судно не найдено в каталоге
	ErrAssetNotFound = errors.New("asset not found in catalog")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
