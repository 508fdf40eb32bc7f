package availability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const opAggregate = "aggregate"

// AggregateMonth строит по одной записи на каждый день месяца для календаря
func (s *Service) AggregateMonth(ctx context.Context, scope domain.AssetScope, month types.YearMonth) ([]domain.DayAggregate, error) {
	return s.AggregateRange(ctx, scope, month.First(), month.Last())
}

// AggregateRange строит по одной записи на каждый день окна [from, to]
func (s *Service) AggregateRange(ctx context.Context, scope domain.AssetScope, from, to types.Date) (days []domain.DayAggregate, err error) {
	started := time.Now()

	// 1. Валидация до любых обращений к хранилищам
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: AggregateRange - from and to are required", ErrInvalidInput)
	}
	from, to = types.OrderDates(from, to)
	if span := from.DaysUntil(to) + 1; span > s.cfg.MaxAggregateDays {
		return nil, fmt.Errorf("%w: AggregateRange - %d days requested, max %d", ErrRangeTooLong, span, s.cfg.MaxAggregateDays)
	}

	ctx, span := s.tracer.Start(ctx, "availability.AggregateRange")
	span.SetAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
		attribute.Bool("single_asset", scope.IsSingleAsset()),
	)
	defer func() { endSpan(span, err) }()

	// 2. Кэш. Версию запоминаем до чтения хранилищ
	var (
		cacheVersion int64
		cacheable    bool
	)
	if s.cache != nil {
		cached, version, ok, cacheErr := s.cache.Get(ctx, scope, from, to)
		cacheVersion, cacheable = version, cacheErr == nil
		if cacheErr != nil {
			s.logger.Warn("AggregateRange: cache read failed for %s..%s: %v", from, to, cacheErr)
		}
		if s.metrics != nil && cacheErr == nil {
			s.metrics.ObserveCache(ok)
		}
		if ok {
			s.observe(opAggregate, "", "cache_hit", started)
			return cached, nil
		}
	}

	// 3. Определяем набор судов
	assets, storeIDs, err := s.scopeAssets(ctx, scope)
	if err != nil {
		s.logger.Error("AggregateRange: catalog lookup failed: %v", err)
		s.observe(opAggregate, "", "error", started)
		return nil, err
	}

	days = emptyDays(from, to)
	if len(assets) == 0 {
		s.observe(opAggregate, "", "empty", started)
		return days, nil
	}

	// 4. Один запрос слотов и один запрос бронирований на всё окно
	snap, err := s.fetch(ctx, storeIDs, from, to)
	if err != nil {
		s.logger.Error("AggregateRange: %v", err)
		s.observe(opAggregate, "", "error", started)
		return nil, err
	}

	known := make(map[int64]struct{}, len(assets))
	for _, id := range assets {
		known[id] = struct{}{}
	}

	slots := make([]domain.Slot, 0, len(snap.slots))
	skipped := 0
	for _, slot := range snap.slots {
		if _, ok := known[slot.AssetID]; !ok {
			skipped++
			s.logger.Warn("AggregateRange: slot id=%d references asset=%d outside catalog scope, skipped", slot.ID, slot.AssetID)
			continue
		}
		slots = append(slots, slot)
	}

	// 5. Раскладываем по дням
	idx := newDayIndex(slots, snap.reservations, from, to, s.cfg.SynthesizeFullFromHalves)
	for i := range days {
		d := days[i].Date
		for _, asset := range assets {
			contribute(&days[i], idx, asset, d)
		}
		if scope.IsSingleAsset() {
			days[i].IsReserved = idx.isReserved(*scope.AssetID, d)
		}
	}

	if cacheable {
		if err := s.cache.Set(ctx, cacheVersion, scope, from, to, days); err != nil {
			s.logger.Warn("AggregateRange: cache write failed for %s..%s: %v", from, to, err)
		}
	}

	s.logger.Info("AggregateRange: %s..%s aggregated for %d assets (%d slots skipped)", from, to, len(assets), skipped)
	s.observe(opAggregate, "", "ok", started)
	return days, nil
}

// contribute добавляет вклад одного судна в агрегат дня.
// Бронирование всегда перекрывает открытые слоты этого судна
func contribute(agg *domain.DayAggregate, idx *dayIndex, asset int64, d types.Date) {
	if idx.isReserved(asset, d) {
		agg.ReservedCount++
		return
	}

	if state, _ := idx.evaluate(asset, d, domain.PartFull); state == domain.DayOpen {
		agg.FullCount++
	} else {
		if state, _ := idx.evaluate(asset, d, domain.PartAM); state == domain.DayOpen {
			agg.AMOnlyCount++
		}
		if state, _ := idx.evaluate(asset, d, domain.PartPM); state == domain.DayOpen {
			agg.PMOnlyCount++
		}
	}

	if state, _ := idx.evaluate(asset, d, domain.PartSunset); state == domain.DayOpen {
		agg.SunsetCount++
	}
}

// scopeAssets возвращает суда, попадающие в scope, и фильтр для запросов к хранилищам
// (nil, если нужен весь флот)
func (s *Service) scopeAssets(ctx context.Context, scope domain.AssetScope) ([]int64, []int64, error) {
	if scope.IsSingleAsset() {
		ids := []int64{*scope.AssetID}
		return ids, ids, nil
	}

	ids, err := s.catalog.ListAssetIDs(ctx, scope)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: catalog lookup: %v", ErrStoreUnavailable, err)
	}
	ids = domain.UniqueSorted(ids)

	if scope.ExperienceID == nil {
		// Весь флот: читаем без фильтра, чтобы увидеть слоты по судам вне каталога
		return ids, nil, nil
	}
	return ids, ids, nil
}

func emptyDays(from, to types.Date) []domain.DayAggregate {
	dates := types.DaysInRange(from, to)
	days := make([]domain.DayAggregate, len(dates))
	for i, d := range dates {
		days[i].Date = d
	}
	return days
}
