package availability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	opResolveRange    = "resolve_range"
	opCheckAssetRange = "check_asset_range"
)

// ResolveRange возвращает отсортированные id судов из pool, доступных для части дня part
// на каждую дату [start, end]. Один занятый день исключает судно на весь диапазон.
// start > end допускается, даты меняются местами
func (s *Service) ResolveRange(ctx context.Context, pool domain.AssetPool, start, end types.Date, part domain.DayPart) ([]int64, error) {
	return s.resolve(ctx, opResolveRange, pool, start, end, part)
}

// CheckAssetRange проверяет одно известное судно на диапазоне
func (s *Service) CheckAssetRange(ctx context.Context, assetID int64, start, end types.Date, part domain.DayPart) (bool, error) {
	if assetID <= 0 {
		return false, fmt.Errorf("%w: CheckAssetRange - asset id must be positive", ErrInvalidInput)
	}
	ids, err := s.resolve(ctx, opCheckAssetRange, domain.PoolOf(assetID), start, end, part)
	if err != nil {
		return false, err
	}
	return len(ids) == 1 && ids[0] == assetID, nil
}

func (s *Service) resolve(ctx context.Context, operation string, pool domain.AssetPool, start, end types.Date, part domain.DayPart) (ids []int64, err error) {
	started := time.Now()

	// 1. Валидация до любых обращений к хранилищам
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: %s - start and end dates are required", ErrInvalidInput, operation)
	}
	if !part.IsValid() {
		return nil, fmt.Errorf("%w: %s - unknown day part %q", ErrInvalidInput, operation, part)
	}
	start, end = types.OrderDates(start, end)

	// 2. Пустой пул: ответ без запросов
	if pool.IsEmpty() {
		s.observe(operation, part, "empty", started)
		return []int64{}, nil
	}

	ctx, span := s.tracer.Start(ctx, "availability."+operation)
	span.SetAttributes(
		attribute.String("start", start.String()),
		attribute.String("end", end.String()),
		attribute.String("part", string(part)),
		attribute.Int("pool_size", len(pool.IDs)),
		attribute.Bool("pool_restricted", pool.Restricted),
	)
	defer func() {
		span.SetAttributes(attribute.Int("survivors", len(ids)))
		endSpan(span, err)
	}()

	// 3. Кандидаты: явный пул или весь каталог
	candidates := pool.IDs
	if !pool.Restricted {
		candidates, err = s.catalog.ListAssetIDs(ctx, domain.AssetScope{})
		if err != nil {
			s.logger.Error("%s: catalog lookup failed: %v", operation, err)
			s.observe(operation, part, "error", started)
			return nil, fmt.Errorf("%w: catalog lookup: %v", ErrStoreUnavailable, err)
		}
		candidates = domain.UniqueSorted(candidates)
		if len(candidates) == 0 {
			s.observe(operation, part, "empty", started)
			return []int64{}, nil
		}
	}

	// 4. Один запрос слотов и один запрос бронирований
	snap, err := s.fetch(ctx, candidates, start, end)
	if err != nil {
		s.logger.Error("%s: %s..%s part=%s: %v", operation, start, end, part, err)
		s.observe(operation, part, "error", started)
		return nil, err
	}

	// 5. Судно остаётся, только если открыто на каждую дату диапазона
	idx := newDayIndex(snap.slots, snap.reservations, start, end, s.cfg.SynthesizeFullFromHalves)
	dates := types.DaysInRange(start, end)

	ids = make([]int64, 0, len(candidates))
	for _, asset := range candidates {
		if availableOnEveryDay(idx, asset, dates, part) {
			ids = append(ids, asset)
		}
	}

	outcome := "available"
	if len(ids) == 0 {
		outcome = "unavailable"
	}
	s.observe(operation, part, outcome, started)
	return ids, nil
}

func availableOnEveryDay(idx *dayIndex, asset int64, dates []types.Date, part domain.DayPart) bool {
	for _, d := range dates {
		if state, _ := idx.evaluate(asset, d, part); state != domain.DayOpen {
			return false
		}
	}
	return true
}

// ValidateSpan проверяет длину выбранного диапазона на стороне вызывающего кода.
// Для частей одного дня допускается только start == end
func ValidateSpan(start, end types.Date, part domain.DayPart, maxDays int) error {
	start, end = types.OrderDates(start, end)
	span := start.DaysUntil(end) + 1
	if part.IsSingleDay() && span > 1 {
		return fmt.Errorf("%w: part %s is limited to a single day", ErrRangeTooLong, part)
	}
	if maxDays > 0 && span > maxDays {
		return fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLong, span, maxDays)
	}
	return nil
}

// MatchPart возвращает хранимую часть дня, которой удовлетворяется запрос part
// для судна на дату d. Для HALF предпочтение отдаётся AM.
// Пустая строка означает, что день недоступен
func (s *Service) MatchPart(ctx context.Context, assetID int64, d types.Date, part domain.DayPart) (domain.DayPart, error) {
	if assetID <= 0 || d.IsZero() || !part.IsValid() {
		return "", fmt.Errorf("%w: MatchPart - asset, date and part are required", ErrInvalidInput)
	}

	ids := []int64{assetID}
	snap, err := s.fetch(ctx, ids, d, d)
	if err != nil {
		s.logger.Error("MatchPart: asset=%d date=%s: %v", assetID, d, err)
		return "", err
	}

	idx := newDayIndex(snap.slots, snap.reservations, d, d, s.cfg.SynthesizeFullFromHalves)
	state, matched := idx.evaluate(assetID, d, part)
	if state != domain.DayOpen {
		return "", nil
	}
	return matched, nil
}
