package reservations

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListReservations(ctx context.Context, assetIDs []int64, from, to types.Date) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// CacheInvalidator сбрасывает кэш агрегатов после записи
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
