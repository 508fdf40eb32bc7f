package slots

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	slotRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-CharterService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-CharterService/internal/service/slots/models"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type fakeSlotRepo struct {
	slots     []domain.Slot
	upserts   int
	upsertErr error
	failAfter int
}

func (f *fakeSlotRepo) ListSlots(_ context.Context, ids []int64, from, to types.Date) ([]domain.Slot, error) {
	var out []domain.Slot
	for _, s := range f.slots {
		if len(ids) == 1 && s.AssetID != ids[0] {
			continue
		}
		if s.Date.Between(from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	for i := range f.slots {
		if f.slots[i].ID == id {
			return &f.slots[i], nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) Upsert(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	f.upserts++
	if f.upsertErr != nil && f.upserts > f.failAfter {
		return nil, f.upsertErr
	}
	for i := range f.slots {
		cur := &f.slots[i]
		if cur.AssetID == s.AssetID && cur.Date == s.Date && cur.Part == s.Part {
			cur.Status = s.Status
			cur.Note = s.Note
			return cur, nil
		}
	}
	created := *s
	created.ID = int64(len(f.slots) + 1)
	f.slots = append(f.slots, created)
	return &created, nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return slotRepo.ErrSlotNotFound
}

type fakeCatalog struct {
	known map[int64]bool
	err   error
}

func (f *fakeCatalog) GetAsset(_ context.Context, id int64) (*catalogservice.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.known[id] {
		return nil, catalogservice.ErrAssetNotFound
	}
	return &catalogservice.Asset{ID: id, Active: true}, nil
}

// fakeTx выполняет fn сразу; при ошибке откатывает слоты к снимку
type fakeTx struct {
	repo  *fakeSlotRepo
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	snapshot := append([]domain.Slot(nil), f.repo.slots...)
	if err := fn(ctx); err != nil {
		f.repo.slots = snapshot
		return err
	}
	return nil
}

type fakeInvalidator struct {
	calls int
	err   error
}

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return f.err
}

func newService(repo *fakeSlotRepo, inv *fakeInvalidator) (*Service, *fakeTx) {
	tx := &fakeTx{repo: repo}
	catalog := &fakeCatalog{known: map[int64]bool{1: true, 2: true}}
	var cache CacheInvalidator
	if inv != nil {
		cache = inv
	}
	return NewService(repo, catalog, tx, cache, 0, logger.NewNop()), tx
}

func openReq(asset int64, from, to string, parts ...string) *models.OpenSlotsRequest {
	return &models.OpenSlotsRequest{
		UserID:  100,
		AssetID: asset,
		From:    types.MustParseDate(from),
		To:      types.MustParseDate(to),
		Parts:   parts,
	}
}

func TestOpenSlots_WritesEveryDayAndPart(t *testing.T) {
	repo := &fakeSlotRepo{}
	inv := &fakeInvalidator{}
	svc, tx := newService(repo, inv)

	resp, err := svc.OpenSlots(context.Background(), openReq(1, "2025-06-03", "2025-06-01", "am", "pm", "am"))
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 6)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, "2025-06-01", resp.Slots[0].Date.String())
	for _, s := range resp.Slots {
		assert.Equal(t, string(domain.SlotAvailable), s.Status)
	}
}

func TestOpenSlots_UpsertOverwritesStatus(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc, _ := newService(repo, nil)

	_, err := svc.OpenSlots(context.Background(), openReq(1, "2025-06-01", "2025-06-01", "full"))
	require.NoError(t, err)

	req := openReq(1, "2025-06-01", "2025-06-01", "full")
	req.Status = "blocked"
	req.Note = ptr.Ptr("engine service")
	resp, err := svc.OpenSlots(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, repo.slots, 1)
	assert.Equal(t, domain.SlotBlocked, repo.slots[0].Status)
	assert.Equal(t, "engine service", *resp.Slots[0].Note)
}

func TestOpenSlots_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.OpenSlotsRequest)
		wantErr error
	}{
		{"half is not storable", func(r *models.OpenSlotsRequest) { r.Parts = []string{"half"} }, ErrInvalidInput},
		{"unknown part", func(r *models.OpenSlotsRequest) { r.Parts = []string{"night"} }, ErrInvalidInput},
		{"no parts", func(r *models.OpenSlotsRequest) { r.Parts = nil }, ErrInvalidInput},
		{"bad status", func(r *models.OpenSlotsRequest) { r.Status = "maybe" }, ErrInvalidInput},
		{"missing date", func(r *models.OpenSlotsRequest) { r.To = types.Date{} }, ErrInvalidInput},
		{"zero asset", func(r *models.OpenSlotsRequest) { r.AssetID = 0 }, ErrInvalidInput},
		{"window too long", func(r *models.OpenSlotsRequest) { r.To = types.MustParseDate("2025-09-01") }, ErrRangeTooLong},
		{"note too long", func(r *models.OpenSlotsRequest) {
			r.Note = ptr.Ptr(strings.Repeat("ш", domain.MaxSlotNoteLength+1))
		}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSlotRepo{}
			svc, tx := newService(repo, nil)
			req := openReq(1, "2025-06-01", "2025-06-02", "am")
			tt.mutate(req)

			_, err := svc.OpenSlots(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, tx.calls)
		})
	}
}

func TestOpenSlots_NoteLimitCountsCharacters(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc, _ := newService(repo, nil)
	req := openReq(1, "2025-06-01", "2025-06-01", "am")
	// Кириллица занимает два байта на символ
	req.Note = ptr.Ptr(strings.Repeat("ш", domain.MaxSlotNoteLength))

	resp, err := svc.OpenSlots(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, *req.Note, *resp.Slots[0].Note)
}

func TestOpenSlots_UnknownAsset(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc, tx := newService(repo, nil)

	_, err := svc.OpenSlots(context.Background(), openReq(42, "2025-06-01", "2025-06-01", "am"))
	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.Zero(t, tx.calls)
}

func TestOpenSlots_CatalogFailure(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, &fakeCatalog{err: catalogservice.ErrInternal}, &fakeTx{repo: repo}, nil, 0, logger.NewNop())

	_, err := svc.OpenSlots(context.Background(), openReq(1, "2025-06-01", "2025-06-01", "am"))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestOpenSlots_RollsBackOnRepositoryError(t *testing.T) {
	repo := &fakeSlotRepo{upsertErr: errors.New("connection reset"), failAfter: 2}
	inv := &fakeInvalidator{}
	svc, _ := newService(repo, inv)

	_, err := svc.OpenSlots(context.Background(), openReq(1, "2025-06-01", "2025-06-05", "full"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, repo.slots)
	assert.Zero(t, inv.calls)
}

func TestOpenSlots_InvalidateFailureIsNotFatal(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc, _ := newService(repo, &fakeInvalidator{err: errors.New("redis down")})

	_, err := svc.OpenSlots(context.Background(), openReq(1, "2025-06-01", "2025-06-01", "sunset"))
	assert.NoError(t, err)
}

func TestListSlots(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc, _ := newService(repo, nil)
	_, err := svc.OpenSlots(context.Background(), openReq(1, "2025-06-01", "2025-06-02", "am"))
	require.NoError(t, err)
	_, err = svc.OpenSlots(context.Background(), openReq(2, "2025-06-01", "2025-06-02", "pm"))
	require.NoError(t, err)

	resp, err := svc.ListSlots(context.Background(), 1, types.MustParseDate("2025-06-02"), types.MustParseDate("2025-06-01"))
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	for _, s := range resp.Slots {
		assert.Equal(t, int64(1), s.AssetID)
	}

	_, err = svc.ListSlots(context.Background(), 0, types.MustParseDate("2025-06-01"), types.MustParseDate("2025-06-02"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteSlot(t *testing.T) {
	repo := &fakeSlotRepo{}
	inv := &fakeInvalidator{}
	svc, _ := newService(repo, inv)
	resp, err := svc.OpenSlots(context.Background(), openReq(1, "2025-06-01", "2025-06-01", "am"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSlot(context.Background(), resp.Slots[0].ID, 100))
	assert.Empty(t, repo.slots)
	assert.Equal(t, 2, inv.calls)

	err = svc.DeleteSlot(context.Background(), resp.Slots[0].ID, 100)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
