package aggregates

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из redis
	ErrCacheRead = errors.New("aggregates.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в redis
	ErrCacheWrite = errors.New("aggregates.cache: failed to write")

	// ErrDecode возвращается, когда значение в кэше не удалось разобрать
	ErrDecode = errors.New("aggregates.cache: failed to decode entry")
)
