package availability

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type fakeStore struct {
	mu               sync.Mutex
	slots            []domain.Slot
	reservations     []domain.Reservation
	slotCalls        int
	reservationCalls int
	slotErr          error
	reservationErr   error
}

func contains(ids []int64, id int64) bool {
	if ids == nil {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeStore) ListSlots(_ context.Context, ids []int64, from, to types.Date) ([]domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slotCalls++
	if f.slotErr != nil {
		return nil, f.slotErr
	}
	var out []domain.Slot
	for _, s := range f.slots {
		if contains(ids, s.AssetID) && s.Date.Between(from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ListReservations(_ context.Context, ids []int64, from, to types.Date) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservationCalls++
	if f.reservationErr != nil {
		return nil, f.reservationErr
	}
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.AssetID != nil && !contains(ids, *r.AssetID) {
			continue
		}
		start, end := types.OrderDates(r.StartDate, r.EndDate)
		if !start.After(to) && !end.Before(from) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) addSlot(asset int64, date string, part domain.DayPart) {
	f.slots = append(f.slots, domain.Slot{
		ID:      int64(len(f.slots) + 1),
		AssetID: asset,
		Date:    types.MustParseDate(date),
		Part:    part,
		Status:  domain.SlotAvailable,
	})
}

func (f *fakeStore) addFullDays(asset int64, from, to string) {
	for _, d := range types.DaysInRange(types.MustParseDate(from), types.MustParseDate(to)) {
		f.addSlot(asset, d.String(), domain.PartFull)
	}
}

func (f *fakeStore) addReservation(asset int64, from, to string, part domain.DayPart, status domain.ReservationStatus) {
	f.reservations = append(f.reservations, domain.Reservation{
		ID:        int64(len(f.reservations) + 1),
		AssetID:   ptr.Ptr(asset),
		StartDate: types.MustParseDate(from),
		EndDate:   types.MustParseDate(to),
		Part:      part,
		Status:    status,
	})
}

func (f *fakeStore) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slotCalls, f.reservationCalls
}

type fakeCatalog struct {
	ids   []int64
	err   error
	calls int
}

func (c *fakeCatalog) ListAssetIDs(_ context.Context, _ domain.AssetScope) ([]int64, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.ids, nil
}

type fakeCache struct {
	data    map[string][]domain.DayAggregate
	sets    int
	version int64
	// onGet вызывается после чтения версии (имитация записи между Get и Set)
	onGet func(c *fakeCache)
}

func cacheKey(scope domain.AssetScope, from, to types.Date) string {
	return fmt.Sprintf("%v:%v:%s:%s", ptr.Value(scope.AssetID, 0), ptr.Value(scope.ExperienceID, 0), from, to)
}

func (c *fakeCache) Get(_ context.Context, scope domain.AssetScope, from, to types.Date) ([]domain.DayAggregate, int64, bool, error) {
	version := c.version
	days, ok := c.data[fmt.Sprintf("v%d:%s", version, cacheKey(scope, from, to))]
	if c.onGet != nil {
		c.onGet(c)
	}
	return days, version, ok, nil
}

func (c *fakeCache) Set(_ context.Context, version int64, scope domain.AssetScope, from, to types.Date, days []domain.DayAggregate) error {
	if c.data == nil {
		c.data = make(map[string][]domain.DayAggregate)
	}
	c.sets++
	c.data[fmt.Sprintf("v%d:%s", version, cacheKey(scope, from, to))] = days
	return nil
}

func newTestService(store *fakeStore, catalog *fakeCatalog, cfg Config) *Service {
	if catalog == nil {
		catalog = &fakeCatalog{}
	}
	return NewService(store, store, catalog, nil, nil, logger.NewNop(), cfg)
}

func d(s string) types.Date {
	return types.MustParseDate(s)
}
