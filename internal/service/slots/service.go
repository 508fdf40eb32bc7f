package slots

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/slot"
	catalogClient "github.com/m04kA/SMC-CharterService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CharterService/internal/service/slots/models"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Service сервис администрирования слотов доступности
type Service struct {
	slotRepo         SlotRepository
	catalogClient    CatalogClient
	txManager        TransactionManager
	cache            CacheInvalidator
	maxAggregateDays int
	logger           Logger
}

// NewService создает новый экземпляр сервиса слотов. cache опционален (nil)
func NewService(
	slotRepo SlotRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	cache CacheInvalidator,
	maxAggregateDays int,
	logger Logger,
) *Service {
	if maxAggregateDays <= 0 {
		maxAggregateDays = domain.DefaultMaxAggregateDays
	}
	return &Service{
		slotRepo:         slotRepo,
		catalogClient:    catalogClient,
		txManager:        txManager,
		cache:            cache,
		maxAggregateDays: maxAggregateDays,
		logger:           logger,
	}
}

// OpenSlots создает или обновляет слоты судна на каждую дату диапазона и каждую часть дня.
// Все слоты пишутся в одной транзакции
func (s *Service) OpenSlots(ctx context.Context, req *models.OpenSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("OpenSlots: asset=%d %s..%s parts=%v status=%q by user=%d",
		req.AssetID, req.From, req.To, req.Parts, req.Status, req.UserID)

	// 1. Валидация
	parts, status, err := s.validateOpenRequest(req)
	if err != nil {
		s.logger.Warn("OpenSlots: validation failed: %v", err)
		return nil, err
	}
	from, to := types.OrderDates(req.From, req.To)

	// 2. Судно должно существовать в каталоге
	if err := s.ensureAsset(ctx, req.AssetID); err != nil {
		return nil, err
	}

	// 3. Пишем слоты
	written := make([]domain.Slot, 0, len(parts)*(from.DaysUntil(to)+1))
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, day := range types.DaysInRange(from, to) {
			for _, part := range parts {
				slot, err := s.slotRepo.Upsert(ctx, &domain.Slot{
					AssetID: req.AssetID,
					Date:    day,
					Part:    part,
					Status:  status,
					Note:    req.Note,
				})
				if err != nil {
					return err
				}
				written = append(written, *slot)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("OpenSlots: repository error for asset=%d: %v", req.AssetID, err)
		return nil, fmt.Errorf("%w: OpenSlots - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "OpenSlots")

	s.logger.Info("OpenSlots: %d slots written for asset=%d", len(written), req.AssetID)
	return models.FromDomainSlotList(written), nil
}

// ListSlots возвращает все слоты судна в окне [from, to], включая заблокированные
func (s *Service) ListSlots(ctx context.Context, assetID int64, from, to types.Date) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: asset=%d %s..%s", assetID, from, to)

	if assetID <= 0 || from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: asset id, from and to are required", ErrInvalidInput)
	}
	from, to = types.OrderDates(from, to)
	if span := from.DaysUntil(to) + 1; span > s.maxAggregateDays {
		return nil, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLong, span, s.maxAggregateDays)
	}

	list, err := s.slotRepo.ListSlots(ctx, []int64{assetID}, from, to)
	if err != nil {
		s.logger.Error("ListSlots: repository error for asset=%d: %v", assetID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(list), nil
}

// DeleteSlot удаляет слот. Отсутствие слота нейтрально для движка, поэтому удаление
// возвращает день в состояние "нет данных"
func (s *Service) DeleteSlot(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteSlot: slot id=%d by user=%d", id, userID)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("DeleteSlot: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("DeleteSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "DeleteSlot")
	return nil
}

func (s *Service) validateOpenRequest(req *models.OpenSlotsRequest) ([]domain.DayPart, domain.SlotStatus, error) {
	if req.AssetID <= 0 {
		return nil, "", fmt.Errorf("%w: asset id must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return nil, "", fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	from, to := types.OrderDates(req.From, req.To)
	if span := from.DaysUntil(to) + 1; span > s.maxAggregateDays {
		return nil, "", fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLong, span, s.maxAggregateDays)
	}

	if len(req.Parts) == 0 {
		return nil, "", fmt.Errorf("%w: at least one part is required", ErrInvalidInput)
	}
	parts := make([]domain.DayPart, 0, len(req.Parts))
	seen := make(map[domain.DayPart]struct{}, len(req.Parts))
	for _, raw := range req.Parts {
		part, err := domain.ParseDayPart(raw)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		// HALF не хранится: оператор открывает AM и/или PM
		if !part.IsStorable() {
			return nil, "", fmt.Errorf("%w: part %q cannot be stored, open am and pm instead", ErrInvalidInput, raw)
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		parts = append(parts, part)
	}

	status := domain.SlotAvailable
	if req.Status != "" {
		status = domain.SlotStatus(req.Status)
		if !status.IsValid() {
			return nil, "", fmt.Errorf("%w: unknown slot status %q", ErrInvalidInput, req.Status)
		}
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxSlotNoteLength {
		return nil, "", fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxSlotNoteLength)
	}

	return parts, status, nil
}

func (s *Service) ensureAsset(ctx context.Context, assetID int64) error {
	if _, err := s.catalogClient.GetAsset(ctx, assetID); err != nil {
		if errors.Is(err, catalogClient.ErrAssetNotFound) {
			s.logger.Warn("ensureAsset: asset id=%d not found in catalog", assetID)
			return ErrAssetNotFound
		}
		s.logger.Error("ensureAsset: failed to get asset id=%d: %v", assetID, err)
		return fmt.Errorf("%w: failed to get asset: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, op string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate aggregate cache: %v", op, err)
	}
}
