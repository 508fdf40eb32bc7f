package domain

import (
	"testing"

	"github.com/m04kA/SMC-CharterService/pkg/ptr"
	"github.com/m04kA/SMC-CharterService/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestReservation_IsOccupying(t *testing.T) {
	r := Reservation{AssetID: ptr.Ptr(int64(1)), Status: ReservationConfirmed}
	assert.True(t, r.IsOccupying())

	r.Status = ReservationPending
	assert.True(t, r.IsOccupying())

	r.Status = ReservationCancelled
	assert.False(t, r.IsOccupying())

	r.Status = "CANCELED"
	assert.False(t, r.IsOccupying())

	unassigned := Reservation{Status: ReservationConfirmed}
	assert.False(t, unassigned.IsOccupying())
}

func TestReservation_Covers(t *testing.T) {
	r := Reservation{
		StartDate: types.MustParseDate("2025-06-03"),
		EndDate:   types.MustParseDate("2025-06-01"),
	}

	assert.True(t, r.Covers(types.MustParseDate("2025-06-01")))
	assert.True(t, r.Covers(types.MustParseDate("2025-06-02")))
	assert.True(t, r.Covers(types.MustParseDate("2025-06-03")))
	assert.False(t, r.Covers(types.MustParseDate("2025-06-04")))
}

func TestAssetPool(t *testing.T) {
	assert.False(t, AllAssets().IsEmpty())
	assert.True(t, AllAssets().Contains(42))
	assert.True(t, PoolOf().IsEmpty())

	p := PoolOf(4, 1, 4)
	assert.Equal(t, []int64{1, 4}, p.IDs)
	assert.True(t, p.Contains(1))
	assert.False(t, p.Contains(2))
}
