package domain

import "errors"

// Engine defaults
const (
	DefaultMaxRangeDays     = 6  // inclusive days for a multi-day FULL/SUNSET selection
	DefaultMaxAggregateDays = 62 // two calendar months
)

// Business validation constants
const (
	MaxCustomerNameLength = 200
	MaxNotesLength        = 1000
	MaxSlotNoteLength     = 500
)

var ErrUnknownDayPart = errors.New("unknown day part")
