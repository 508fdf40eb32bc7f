package selection

import "errors"

var (
	// ErrNoAssetAvailable возвращается, когда ни одно судно не доступно на выбранный диапазон.
	// Ошибки движка также сводятся к ней: неподтверждённый день не может быть выбран
	ErrNoAssetAvailable = errors.New("selection: no asset available for this range")

	// ErrRangeTooLong возвращается при превышении максимальной длины диапазона
	ErrRangeTooLong = errors.New("selection: range too long")

	// ErrSuperseded возвращается, когда ответ движка устарел и был отброшен
	ErrSuperseded = errors.New("selection: superseded by a newer action")

	// ErrNotAnchored возвращается при проверке даты окончания без выбранной начальной даты
	ErrNotAnchored = errors.New("selection: no anchor date selected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("selection: invalid input")

	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("selection: session not found")
)
