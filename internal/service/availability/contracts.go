package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// SlotStore источник явно открытых слотов.
// assetIDs == nil означает весь флот
type SlotStore interface {
	ListSlots(ctx context.Context, assetIDs []int64, from, to types.Date) ([]domain.Slot, error)
}

// ReservationStore источник бронирований, пересекающих окно [from, to]
type ReservationStore interface {
	ListReservations(ctx context.Context, assetIDs []int64, from, to types.Date) ([]domain.Reservation, error)
}

// CatalogClient интерфейс клиента каталога судов
type CatalogClient interface {
	ListAssetIDs(ctx context.Context, scope domain.AssetScope) ([]int64, error)
}

// AggregateCache кэш помесячных агрегатов.
// Get возвращает версию кэша, Set пишет строго под ней
type AggregateCache interface {
	Get(ctx context.Context, scope domain.AssetScope, from, to types.Date) ([]domain.DayAggregate, int64, bool, error)
	Set(ctx context.Context, version int64, scope domain.AssetScope, from, to types.Date, days []domain.DayAggregate) error
}

// Metrics интерфейс метрик движка
type Metrics interface {
	ObserveResolution(operation, part, outcome string, took time.Duration)
	ObserveCache(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
