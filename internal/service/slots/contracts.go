package slots

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListSlots(ctx context.Context, assetIDs []int64, from, to types.Date) ([]domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Upsert(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogClient интерфейс клиента каталога
type CatalogClient interface {
	GetAsset(ctx context.Context, assetID int64) (*catalogservice.Asset, error)
}

// CacheInvalidator сбрасывает кэш агрегатов после записи
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
