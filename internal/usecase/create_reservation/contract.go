package create_reservation

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// AvailabilityChecker проверка доступности судна по живым данным хранилищ.
// Внутри транзакции чтения идут через её соединение
type AvailabilityChecker interface {
	CheckAssetRange(ctx context.Context, assetID int64, start, end types.Date, part domain.DayPart) (bool, error)
	MatchPart(ctx context.Context, assetID int64, d types.Date, part domain.DayPart) (domain.DayPart, error)
}

// CatalogClient интерфейс клиента каталога судов
type CatalogClient interface {
	GetAsset(ctx context.Context, assetID int64) (*catalogservice.Asset, error)
}

// CacheInvalidator сбрасывает кэш агрегатов после записи
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
