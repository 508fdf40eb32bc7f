package domain

import "github.com/m04kA/SMC-CharterService/pkg/types"

// DayState is the three-valued outcome of evaluating one asset, date and part.
type DayState int

const (
	// DayNoData means neither an open slot nor a reservation speaks for the day.
	DayNoData DayState = iota
	// DayOpen means an available slot matches the requested part.
	DayOpen
	// DayReserved means an occupying reservation covers the day.
	DayReserved
)

func (s DayState) String() string {
	switch s {
	case DayOpen:
		return "open"
	case DayReserved:
		return "reserved"
	default:
		return "no_data"
	}
}

// DayAggregate is the per-day summary used to paint a calendar.
type DayAggregate struct {
	Date        types.Date
	FullCount   int
	AMOnlyCount int
	PMOnlyCount int
	SunsetCount int
	// ReservedCount counts assets in scope wholly blocked by a reservation.
	ReservedCount int
	// IsReserved is only set for single-asset scopes.
	IsReserved bool
}

// HasData reports whether anything is known about the day.
func (a DayAggregate) HasData() bool {
	return a.FullCount+a.AMOnlyCount+a.PMOnlyCount+a.SunsetCount+a.ReservedCount > 0 || a.IsReserved
}
