package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_DaysUntil(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{"same day", "2025-07-10", "2025-07-10", 0},
		{"next day", "2025-07-10", "2025-07-11", 1},
		{"backwards", "2025-07-11", "2025-07-10", -1},
		{"across month", "2025-01-30", "2025-02-02", 3},
		{"leap february", "2024-02-28", "2024-03-01", 2},
		{"common february", "2025-02-28", "2025-03-01", 1},
		{"across year", "2025-12-31", "2026-01-01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDate(tt.from).DaysUntil(MustParseDate(tt.to))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysInRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{"single day", "2025-07-10", "2025-07-10", []string{"2025-07-10"}},
		{"inclusive ends", "2025-07-10", "2025-07-12", []string{"2025-07-10", "2025-07-11", "2025-07-12"}},
		{"across month", "2025-06-30", "2025-07-01", []string{"2025-06-30", "2025-07-01"}},
		{"leap day", "2024-02-28", "2024-03-01", []string{"2024-02-28", "2024-02-29", "2024-03-01"}},
		{"inverted", "2025-07-12", "2025-07-10", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := DaysInRange(MustParseDate(tt.from), MustParseDate(tt.to))
			got := make([]string, 0, len(days))
			for _, d := range days {
				got = append(got, d.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Empty(t, DaysInRange(Date{}, MustParseDate("2025-07-10")))
}

func TestYearMonth_FirstLast(t *testing.T) {
	tests := []struct {
		month       string
		first, last string
	}{
		{"2025-08", "2025-08-01", "2025-08-31"},
		{"2025-04", "2025-04-01", "2025-04-30"},
		{"2025-12", "2025-12-01", "2025-12-31"},
		{"2024-02", "2024-02-01", "2024-02-29"},
		{"2025-02", "2025-02-01", "2025-02-28"},
		{"2100-02", "2100-02-01", "2100-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			ym, err := ParseYearMonth(tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.first, ym.First().String())
			assert.Equal(t, tt.last, ym.Last().String())
			assert.Equal(t, tt.month, ym.String())
		})
	}

	_, err := ParseYearMonth("2025-13")
	assert.ErrorIs(t, err, ErrInvalidYearMonth)
}

func TestDate_Scan(t *testing.T) {
	want := MustParseDate("2025-07-10")

	tests := []struct {
		name string
		src  interface{}
		want Date
	}{
		{"nil", nil, Date{}},
		{"time", time.Date(2025, 7, 10, 23, 30, 0, 0, time.UTC), want},
		{"string", "2025-07-10", want},
		{"string with time", "2025-07-10T00:00:00Z", want},
		{"bytes", []byte("2025-07-10"), want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MustParseDate("2000-01-01")
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d)
		})
	}

	var d Date
	assert.ErrorIs(t, d.Scan(42), ErrInvalidDate)
	assert.ErrorIs(t, d.Scan("10.07.2025"), ErrInvalidDate)
}

func TestDate_Value(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustParseDate("2025-07-10").Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), v)
}

func TestDate_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		D Date `json:"d"`
		Z Date `json:"z"`
	}{D: MustParseDate("2025-07-10")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-07-10","z":null}`, string(raw))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-07-10"`), &d))
	assert.Equal(t, MustParseDate("2025-07-10"), d)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"2025/07/10"`), &d), ErrInvalidDate)
}

func TestOrderDatesAndBetween(t *testing.T) {
	a, b := MustParseDate("2025-07-12"), MustParseDate("2025-07-10")

	from, to := OrderDates(a, b)
	assert.Equal(t, b, from)
	assert.Equal(t, a, to)

	assert.True(t, MustParseDate("2025-07-10").Between(from, to))
	assert.True(t, MustParseDate("2025-07-12").Between(from, to))
	assert.False(t, MustParseDate("2025-07-13").Between(from, to))
}
