package domain

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// DayPart is a named bookable window of a calendar day.
type DayPart string

const (
	PartFull   DayPart = "full"
	PartAM     DayPart = "am"
	PartPM     DayPart = "pm"
	PartSunset DayPart = "sunset"
	// PartHalf is the generic half-day used by experiences.
	// It is never stored; it resolves to AM or PM against slot data.
	PartHalf DayPart = "half"
)

// AllDayParts lists parts in display order.
var AllDayParts = []DayPart{PartFull, PartAM, PartPM, PartSunset, PartHalf}

// StorableDayParts lists parts a Slot or Reservation row may carry.
var StorableDayParts = []DayPart{PartFull, PartAM, PartPM, PartSunset}

// ParseDayPart parses a part name case-insensitively.
func ParseDayPart(s string) (DayPart, error) {
	p := DayPart(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDayPart, s)
	}
	return p, nil
}

// IsValid reports whether p is a known part.
func (p DayPart) IsValid() bool {
	switch p {
	case PartFull, PartAM, PartPM, PartSunset, PartHalf:
		return true
	}
	return false
}

// IsStorable reports whether p may be persisted on a slot.
func (p DayPart) IsStorable() bool {
	return p.IsValid() && p != PartHalf
}

// IsSingleDay reports whether a selection with this part is limited to one date.
func (p DayPart) IsSingleDay() bool {
	return p == PartAM || p == PartPM || p == PartHalf
}

// Window returns the display start and end time of the part.
func (p DayPart) Window() (types.TimeString, types.TimeString) {
	switch p {
	case PartFull:
		return types.MustTimeString("09:00"), types.MustTimeString("17:00")
	case PartAM, PartHalf:
		return types.MustTimeString("09:00"), types.MustTimeString("13:00")
	case PartPM:
		return types.MustTimeString("13:30"), types.MustTimeString("17:30")
	case PartSunset:
		return types.MustTimeString("18:00"), types.MustTimeString("20:30")
	}
	return "", ""
}

// Candidates returns the storable parts that can satisfy a request for p,
// in order of display preference.
func (p DayPart) Candidates() []DayPart {
	if p == PartHalf {
		return []DayPart{PartAM, PartPM}
	}
	return []DayPart{p}
}

// Blocks reports whether a booking of part a leaves no room for part b on
// the same asset and date. It is symmetric. FULL blocks everything, including
// another FULL; any part blocks itself; AM, PM and SUNSET are mutually
// independent. HALF is treated as possibly AM and possibly PM, so it blocks
// both of them.
func Blocks(a, b DayPart) bool {
	if a == PartFull || b == PartFull {
		return true
	}
	if a == b {
		return true
	}
	if a == PartHalf {
		return b == PartAM || b == PartPM
	}
	if b == PartHalf {
		return a == PartAM || a == PartPM
	}
	return false
}

func (p DayPart) String() string {
	return string(p)
}
