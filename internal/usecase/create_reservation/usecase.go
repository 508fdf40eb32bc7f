package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	catalogClient "github.com/m04kA/SMC-CharterService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CharterService/pkg/txmanager"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// UseCase use case для создания бронирования судна
type UseCase struct {
	reservationRepo ReservationRepository
	availability    AvailabilityChecker
	catalogClient   CatalogClient
	txManager       TransactionManager
	cache           CacheInvalidator
	maxRangeDays    int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. cache опционален (nil)
func NewUseCase(
	reservationRepo ReservationRepository,
	availability AvailabilityChecker,
	catalogClient CatalogClient,
	txManager TransactionManager,
	cache CacheInvalidator,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		availability:    availability,
		catalogClient:   catalogClient,
		txManager:       txManager,
		cache:           cache,
		maxRangeDays:    maxRangeDays,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Доступность перепроверяется по живым данным в сериализуемой транзакции,
// поэтому два параллельных бронирования одного судна не пройдут оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, asset=%d, %s..%s, part=%s",
		req.UserID, req.AssetID, req.StartDate, req.EndDate, req.Part)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}
	start, end := types.OrderDates(req.StartDate, req.EndDate)

	// 2. Судно должно существовать и быть активным
	asset, err := uc.catalogClient.GetAsset(ctx, req.AssetID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrAssetNotFound) {
			uc.logger.Warn("CreateReservation: asset id=%d not found", req.AssetID)
			return nil, ErrAssetNotFound
		}
		uc.logger.Error("CreateReservation: failed to get asset id=%d: %v", req.AssetID, err)
		return nil, fmt.Errorf("%w: failed to get asset: %v", ErrInternal, err)
	}
	if !asset.Active {
		uc.logger.Warn("CreateReservation: asset id=%d is not active", req.AssetID)
		return nil, ErrAssetInactive
	}

	var result *domain.Reservation

	// 3. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Определяем хранимую часть дня
		part, err := uc.resolvePart(txCtx, req.AssetID, start, end, req.Part)
		if err != nil {
			return err
		}

		// 3.2. Создаем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			AssetID:      &req.AssetID,
			StartDate:    start,
			EndDate:      end,
			Part:         part,
			Status:       domain.ReservationConfirmed,
			CustomerName: strings.TrimSpace(req.CustomerName),
			Notes:        req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		// Параллельная транзакция успела занять судно
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateReservation: serialization conflict for asset=%d: %v", req.AssetID, err)
			return nil, ErrAssetUnavailable
		}
		if errors.Is(err, ErrAssetUnavailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кэш агрегатов
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("CreateReservation: failed to invalidate aggregate cache: %v", err)
		}
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d (part=%s)", result.ID, result.Part)

	return &Response{
		ID:           result.ID,
		AssetID:      req.AssetID,
		StartDate:    result.StartDate,
		EndDate:      result.EndDate,
		Part:         result.Part,
		Status:       string(result.Status),
		CustomerName: result.CustomerName,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}

// resolvePart проверяет доступность и возвращает часть дня для записи.
// Для частей одного дня сохраняется конкретный слот (HALF раскрывается в AM или PM)
func (uc *UseCase) resolvePart(ctx context.Context, assetID int64, start, end types.Date, part domain.DayPart) (domain.DayPart, error) {
	if part.IsSingleDay() {
		matched, err := uc.availability.MatchPart(ctx, assetID, start, part)
		if err != nil {
			uc.logger.Error("CreateReservation: availability check failed for asset=%d: %v", assetID, err)
			return "", fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if matched == "" {
			uc.logger.Warn("CreateReservation: asset=%d not available on %s for part=%s", assetID, start, part)
			return "", ErrAssetUnavailable
		}
		return matched, nil
	}

	ok, err := uc.availability.CheckAssetRange(ctx, assetID, start, end, part)
	if err != nil {
		uc.logger.Error("CreateReservation: availability check failed for asset=%d: %v", assetID, err)
		return "", fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("CreateReservation: asset=%d not available for %s..%s part=%s", assetID, start, end, part)
		return "", ErrAssetUnavailable
	}
	return part, nil
}
