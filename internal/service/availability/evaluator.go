package availability

import (
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type dayKey struct {
	asset int64
	date  types.Date
}

// partSet набор частей дня с открытыми слотами
type partSet uint8

func bit(p domain.DayPart) partSet {
	switch p {
	case domain.PartFull:
		return 1 << 0
	case domain.PartAM:
		return 1 << 1
	case domain.PartPM:
		return 1 << 2
	case domain.PartSunset:
		return 1 << 3
	}
	return 0
}

func (s partSet) has(p domain.DayPart) bool {
	b := bit(p)
	return b != 0 && s&b != 0
}

// dayIndex снимок слотов и бронирований одного запроса, разложенный по (судно, дата)
type dayIndex struct {
	reserved       map[dayKey]struct{}
	open           map[dayKey]partSet
	synthesizeFull bool
}

// newDayIndex строит индекс. Бронирования блокируют судно на каждую дату своего
// диапазона независимо от части дня. Заблокированные оператором слоты не учитываются
func newDayIndex(slots []domain.Slot, reservations []domain.Reservation, from, to types.Date, synthesizeFull bool) *dayIndex {
	idx := &dayIndex{
		reserved:       make(map[dayKey]struct{}),
		open:           make(map[dayKey]partSet),
		synthesizeFull: synthesizeFull,
	}

	for i := range reservations {
		r := &reservations[i]
		if !r.IsOccupying() {
			continue
		}
		start, end := types.OrderDates(r.StartDate, r.EndDate)
		// Обрезаем по окну запроса, чтобы длинные бронирования не раздували индекс
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for _, d := range types.DaysInRange(start, end) {
			idx.reserved[dayKey{asset: *r.AssetID, date: d}] = struct{}{}
		}
	}

	for i := range slots {
		s := &slots[i]
		if !s.IsAvailable() || !s.Part.IsStorable() {
			continue
		}
		key := dayKey{asset: s.AssetID, date: s.Date}
		idx.open[key] |= bit(s.Part)
	}

	return idx
}

func (idx *dayIndex) isReserved(asset int64, d types.Date) bool {
	_, ok := idx.reserved[dayKey{asset: asset, date: d}]
	return ok
}

func (idx *dayIndex) parts(asset int64, d types.Date) partSet {
	return idx.open[dayKey{asset: asset, date: d}]
}

// evaluate возвращает состояние дня для (судно, дата, часть) и часть,
// которой запрос был удовлетворён (для HALF это AM или PM)
func (idx *dayIndex) evaluate(asset int64, d types.Date, part domain.DayPart) (domain.DayState, domain.DayPart) {
	if idx.isReserved(asset, d) {
		return domain.DayReserved, ""
	}

	open := idx.parts(asset, d)

	if part == domain.PartFull {
		if open.has(domain.PartFull) {
			return domain.DayOpen, domain.PartFull
		}
		if idx.synthesizeFull && open.has(domain.PartAM) && open.has(domain.PartPM) {
			return domain.DayOpen, domain.PartFull
		}
		return domain.DayNoData, ""
	}

	for _, candidate := range part.Candidates() {
		if open.has(candidate) && !blockedBySibling(open, candidate) {
			return domain.DayOpen, candidate
		}
	}
	return domain.DayNoData, ""
}

// blockedBySibling проверяет, что другой открытый слот дня не занимает окно candidate
func blockedBySibling(open partSet, candidate domain.DayPart) bool {
	for _, other := range domain.StorableDayParts {
		if other == candidate || !open.has(other) {
			continue
		}
		if domain.Blocks(other, candidate) {
			return true
		}
	}
	return false
}
