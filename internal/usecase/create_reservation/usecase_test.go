package create_reservation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/txmanager"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// memStore хранилище слотов и бронирований для реального движка доступности
type memStore struct {
	slots        []domain.Slot
	reservations []domain.Reservation
	createErr    error
}

func (m *memStore) ListSlots(_ context.Context, ids []int64, from, to types.Date) ([]domain.Slot, error) {
	var out []domain.Slot
	for _, s := range m.slots {
		if (ids == nil || s.AssetID == ids[0]) && s.Date.Between(from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ListReservations(_ context.Context, ids []int64, from, to types.Date) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range m.reservations {
		if r.AssetID == nil || (ids != nil && *r.AssetID != ids[0]) {
			continue
		}
		if !r.StartDate.After(to) && !r.EndDate.Before(from) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	res.ID = int64(len(m.reservations) + 1)
	m.reservations = append(m.reservations, *res)
	return res, nil
}

func (m *memStore) open(asset int64, date string, parts ...domain.DayPart) {
	for _, p := range parts {
		m.slots = append(m.slots, domain.Slot{
			ID: int64(len(m.slots) + 1), AssetID: asset, Date: types.MustParseDate(date),
			Part: p, Status: domain.SlotAvailable,
		})
	}
}

type fakeCatalog struct {
	assets map[int64]bool // id -> active
	err    error
}

func (f *fakeCatalog) GetAsset(_ context.Context, id int64) (*catalogservice.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	active, ok := f.assets[id]
	if !ok {
		return nil, catalogservice.ErrAssetNotFound
	}
	return &catalogservice.Asset{ID: id, Active: active}, nil
}

func (f *fakeCatalog) ListAssetIDs(context.Context, domain.AssetScope) ([]int64, error) {
	return []int64{1, 2}, nil
}

type fakeTx struct {
	calls int
	err   error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return nil
}

type fixture struct {
	store *memStore
	tx    *fakeTx
	inv   *fakeInvalidator
	uc    *UseCase
}

func newFixture() *fixture {
	store := &memStore{}
	catalog := &fakeCatalog{assets: map[int64]bool{1: true, 2: false}}
	log := logger.NewNop()
	engine := availability.NewService(store, store, catalog, nil, nil, log, availability.Config{})
	f := &fixture{store: store, tx: &fakeTx{}, inv: &fakeInvalidator{}}
	f.uc = NewUseCase(store, engine, catalog, f.tx, f.inv, 0, log)
	return f
}

func request(start, end string, part domain.DayPart) *Request {
	return &Request{
		UserID:       10,
		AssetID:      1,
		StartDate:    types.MustParseDate(start),
		EndDate:      types.MustParseDate(end),
		Part:         part,
		CustomerName: "  Jane Doe ",
		Notes:        ptr.Ptr("anniversary"),
	}
}

func TestExecute_MultiDayFull(t *testing.T) {
	f := newFixture()
	f.store.open(1, "2025-06-01", domain.PartFull)
	f.store.open(1, "2025-06-02", domain.PartFull)
	f.store.open(1, "2025-06-03", domain.PartFull)

	resp, err := f.uc.Execute(context.Background(), request("2025-06-03", "2025-06-01", domain.PartFull))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", resp.StartDate.String())
	assert.Equal(t, "2025-06-03", resp.EndDate.String())
	assert.Equal(t, domain.PartFull, resp.Part)
	assert.Equal(t, string(domain.ReservationConfirmed), resp.Status)
	assert.Equal(t, "Jane Doe", resp.CustomerName)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.inv.calls)

	// второе бронирование того же судна пересекается с первым
	_, err = f.uc.Execute(context.Background(), request("2025-06-02", "2025-06-02", domain.PartFull))
	assert.ErrorIs(t, err, ErrAssetUnavailable)
	assert.Len(t, f.store.reservations, 1)
}

func TestExecute_GapDayRejectsWholeRange(t *testing.T) {
	f := newFixture()
	f.store.open(1, "2025-06-01", domain.PartFull)
	f.store.open(1, "2025-06-03", domain.PartFull)

	_, err := f.uc.Execute(context.Background(), request("2025-06-01", "2025-06-03", domain.PartFull))
	assert.ErrorIs(t, err, ErrAssetUnavailable)
	assert.Empty(t, f.store.reservations)
	assert.Zero(t, f.inv.calls)
}

func TestExecute_HalfStoresConcretePart(t *testing.T) {
	f := newFixture()
	f.store.open(1, "2025-06-05", domain.PartAM, domain.PartPM)

	resp, err := f.uc.Execute(context.Background(), request("2025-06-05", "2025-06-05", domain.PartHalf))
	require.NoError(t, err)
	assert.Equal(t, domain.PartAM, resp.Part)

	// бронирование занимает судно на весь день, PM уже недоступен
	_, err = f.uc.Execute(context.Background(), request("2025-06-05", "2025-06-05", domain.PartPM))
	assert.ErrorIs(t, err, ErrAssetUnavailable)
}

func TestExecute_HalfFallsBackToPM(t *testing.T) {
	f := newFixture()
	f.store.open(1, "2025-06-05", domain.PartPM)

	resp, err := f.uc.Execute(context.Background(), request("2025-06-05", "2025-06-05", domain.PartHalf))
	require.NoError(t, err)
	assert.Equal(t, domain.PartPM, resp.Part)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"zero asset", func(r *Request) { r.AssetID = 0 }, ErrInvalidInput},
		{"missing end", func(r *Request) { r.EndDate = types.Date{} }, ErrInvalidInput},
		{"unknown part", func(r *Request) { r.Part = "night" }, ErrInvalidInput},
		{"blank customer", func(r *Request) { r.CustomerName = "   " }, ErrInvalidInput},
		{"customer too long", func(r *Request) { r.CustomerName = strings.Repeat("a", domain.MaxCustomerNameLength+1) }, ErrInvalidInput},
		{"notes too long", func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("n", domain.MaxNotesLength+1)) }, ErrInvalidInput},
		{"span over cap", func(r *Request) { r.EndDate = types.MustParseDate("2025-06-07") }, ErrRangeTooLong},
		{"half over two days", func(r *Request) {
			r.Part = domain.PartHalf
			r.EndDate = types.MustParseDate("2025-06-02")
		}, ErrRangeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request("2025-06-01", "2025-06-01", domain.PartFull)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecute_SixDaysIsAllowed(t *testing.T) {
	f := newFixture()
	for _, d := range types.DaysInRange(types.MustParseDate("2025-06-01"), types.MustParseDate("2025-06-06")) {
		f.store.open(1, d.String(), domain.PartSunset)
	}

	resp, err := f.uc.Execute(context.Background(), request("2025-06-01", "2025-06-06", domain.PartSunset))
	require.NoError(t, err)
	assert.Equal(t, domain.PartSunset, resp.Part)
}

func TestExecute_CatalogErrors(t *testing.T) {
	f := newFixture()

	req := request("2025-06-01", "2025-06-01", domain.PartFull)
	req.AssetID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAssetNotFound)

	req.AssetID = 2
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAssetInactive)
	assert.Zero(t, f.tx.calls)

	f.uc.catalogClient = &fakeCatalog{err: catalogservice.ErrInternal}
	req.AssetID = 1
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SerializationConflict(t *testing.T) {
	f := newFixture()
	f.store.open(1, "2025-06-01", domain.PartFull)
	f.tx.err = errors.Join(txmanager.ErrCommitTx, &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), request("2025-06-01", "2025-06-01", domain.PartFull))
	assert.ErrorIs(t, err, ErrAssetUnavailable)
	assert.Zero(t, f.inv.calls)
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture()
	f.store.open(1, "2025-06-01", domain.PartFull)
	f.store.createErr = errors.New("insert failed")

	_, err := f.uc.Execute(context.Background(), request("2025-06-01", "2025-06-01", domain.PartFull))
	assert.ErrorIs(t, err, ErrInternal)
}
