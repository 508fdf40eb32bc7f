package selection

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Resolver движок разрешения диапазонов
type Resolver interface {
	ResolveRange(ctx context.Context, pool domain.AssetPool, start, end types.Date, part domain.DayPart) ([]int64, error)
}

// Metrics интерфейс метрик выбора диапазона
type Metrics interface {
	IncSelectionSuperseded()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
